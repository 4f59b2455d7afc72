package format

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/dagger/testctx"
	"github.com/dagger/testctx/oteltest"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Exit(oteltest.Main(m))
}

type FormatSuite struct{}

func TestFormat(tT *testing.T) {
	testctx.New(tT,
		oteltest.WithTracing[*testing.T](),
		oteltest.WithLogging[*testing.T](),
	).RunTests(FormatSuite{})
}

type formatCase struct {
	name     string
	input    string
	expected string
}

func runFormatCases(t *testctx.T, opts Options, tests []formatCase) {
	for _, tt := range tests {
		t.Run(tt.name, func(ctx context.Context, t *testctx.T) {
			result := Format([]byte(tt.input), opts)
			require.Equal(t, tt.expected, result)
			require.Equal(t, result, Format([]byte(result), opts), "not idempotent")
		})
	}
}

func (FormatSuite) TestAssignmentAlignment(ctx context.Context, t *testctx.T) {
	runFormatCases(t, DefaultOptions(), []formatCase{
		{
			name: "raw properties align",
			input: `resource Bucket photos {
  name = "photos"
  versioning = true
}`,
			expected: `resource Bucket photos {
    name       = "photos"
    versioning = true
}
`,
		},
		{
			name: "typed declarations align on full prefix width",
			input: `input string region = "us-east-1"
input number count = 3`,
			expected: `input string region = "us-east-1"
input number count  = 3
`,
		},
		{
			name: "declaration kind change starts a new group",
			input: `input string a = 1
output string bbbbbb = 2`,
			expected: `input string a = 1
output string bbbbbb = 2
`,
		},
		{
			name: "decorator lines do not break the group",
			input: `resource R r {
  a = 1
  @sensitive
  bbbb = 2
}`,
			expected: `resource R r {
    a    = 1
    @sensitive
    bbbb = 2
}
`,
		},
		{
			name: "declaration without default stays in group",
			input: `component C c {
  input string name
  input number replicas = 1
  input string image = "x"
}`,
			expected: `component C c {
    input string name
    input number replicas = 1
    input string image    = "x"
}
`,
		},
	})
}

func (FormatSuite) TestGroupSeparation(ctx context.Context, t *testctx.T) {
	runFormatCases(t, DefaultOptions(), []formatCase{
		{
			name: "blank line",
			input: `resource R r {
  a = 1
  bbbb = 2

  cc = 3
}`,
			expected: `resource R r {
    a    = 1
    bbbb = 2

    cc = 3
}
`,
		},
		{
			name: "own-line comment",
			input: `resource R r {
  a = 1
  // note
  bbbb = 2
}`,
			expected: `resource R r {
    a = 1
    // note
    bbbb = 2
}
`,
		},
		{
			name: "trailing comment keeps the group",
			input: `resource R r {
  a = 1 // short
  bbbb = 2
}`,
			expected: `resource R r {
    a    = 1 // short
    bbbb = 2
}
`,
		},
		{
			name: "typed declarations separated by a blank line",
			input: `input string a = 1

input string bbbb = 2`,
			expected: `input string a = 1

input string bbbb = 2
`,
		},
	})
}

func (FormatSuite) TestNestedLiterals(ctx context.Context, t *testctx.T) {
	runFormatCases(t, DefaultOptions(), []formatCase{
		{
			name: "nested content follows the declaration baseline",
			input: `resource R r {
          tag = {
  a = 1
      }
}`,
			expected: `resource R r {
    tag = {
        a = 1
    }
}
`,
		},
		{
			name: "literal inside literal",
			input: `resource R r {
  tag = { nested = {
  a = 1
  } }
}`,
			expected: `resource R r {
    tag = {
        nested = {
            a = 1
        }
    }
}
`,
		},
		{
			name: "array of objects",
			input: `resource R r {
  items = [
  {
  a: 1
  },
  { b: 2 }
  ]
}`,
			expected: `resource R r {
    items = [
        {
            a: 1
        },
        { b: 2 }
    ]
}
`,
		},
		{
			name: "literal in a typed declaration",
			input: `component C c {
  var object cfg = {
  a = 1
  }
}`,
			expected: `component C c {
    var object cfg = {
        a = 1
    }
}
`,
		},
		{
			name: "literal hugging a decorator paren",
			input: `resource R r {
  @tags({
  env: "prod"
  })
  name = "x"
}`,
			expected: `resource R r {
    @tags({
        env: "prod"
    })
    name = "x"
}
`,
		},
	})
}

func (FormatSuite) TestSingleAndMultiLineLiterals(ctx context.Context, t *testctx.T) {
	runFormatCases(t, DefaultOptions(), []formatCase{
		{
			name: "single-line literal stays single-line",
			input: `resource R r {
  tag = {a: 1}
}`,
			expected: `resource R r {
    tag = { a: 1 }
}
`,
		},
		{
			name: "multi-line literal keeps delimiters on their own lines",
			input: `resource R r {
  tag = {
 a: 1
}
}`,
			expected: `resource R r {
    tag = {
        a: 1
    }
}
`,
		},
		{
			name: "content on the delimiter lines is moved",
			input: `resource R r {
  tag = {a: 1,
  bb: 2}
}`,
			expected: `resource R r {
    tag = {
        a : 1,
        bb: 2
    }
}
`,
		},
		{
			name: "multi-line array",
			input: `resource R r {
  tags = ["a",
  "b"]
}`,
			expected: `resource R r {
    tags = [
        "a",
        "b"
    ]
}
`,
		},
		{
			name: "single-line declaration body",
			input: `resource R r { name = "x" }`,
			expected: `resource R r { name = "x" }
`,
		},
	})
}

func (FormatSuite) TestSchemas(ctx context.Context, t *testctx.T) {
	runFormatCases(t, DefaultOptions(), []formatCase{
		{
			name: "names and defaults align in two columns",
			input: `schema S {
  string host
  number port = 8080
}`,
			expected: `schema S {
    string host
    number port  = 8080
}
`,
		},
		{
			name: "array suffix widens the type",
			input: `schema S {
  string host
  number port = 8080
  string[] tags = []
  any meta
}`,
			expected: `schema S {
    string   host
    number   port  = 8080
    string[] tags  = []
    any      meta
}
`,
		},
		{
			name: "decorators are skipped",
			input: `schema S {
  @required string name
  number count = 1
}`,
			expected: `schema S {
    @required string name
    number count = 1
}
`,
		},
	})
}

func (FormatSuite) TestNamedArguments(ctx context.Context, t *testctx.T) {
	runFormatCases(t, DefaultOptions(), []formatCase{
		{
			name: "multi-line decorator arguments align colons",
			input: `@provider(
  region: "us-east-1",
  profile: "default"
)
resource A a {}`,
			expected: `@provider(
    region : "us-east-1",
    profile: "default"
)
resource A a {}
`,
		},
		{
			name: "single-line arguments are left alone",
			input: `@provider(region: "us-east-1", profile: "default")
resource A a {}`,
			expected: `@provider(region: "us-east-1", profile: "default")
resource A a {}
`,
		},
		{
			name: "function parameters",
			input: `fun greet( name : string ) : string {
  return "hello ${name}"
}`,
			expected: `fun greet(name: string): string {
    return "hello ${name}"
}
`,
		},
	})
}

func (FormatSuite) TestLineBreaks(ctx context.Context, t *testctx.T) {
	runFormatCases(t, DefaultOptions(), []formatCase{
		{
			name: "declarations on one line are split",
			input: `resource A a {} resource B b {}`,
			expected: `resource A a {}
resource B b {}
`,
		},
		{
			name: "blank lines collapse to one",
			input: `resource A a {}



resource B b {}`,
			expected: `resource A a {}

resource B b {}
`,
		},
		{
			name: "leading blank lines are dropped",
			input: `

input string a = "x"
`,
			expected: `input string a = "x"
`,
		},
		{
			name: "nested declaration after a statement",
			input: `component C c {
  name = "c" resource B b {
  size = 1
  }
}`,
			expected: `component C c {
    name = "c"
    resource B b {
        size = 1
    }
}
`,
		},
		{
			name: "for loop body",
			input: `for region in ["us", "eu"] {
resource aws.Bucket logs {
name = "logs-${region}"
}
}`,
			expected: `for region in ["us", "eu"] {
    resource aws.Bucket logs {
        name = "logs-${region}"
    }
}
`,
		},
	})
}

func (FormatSuite) TestNoFmt(ctx context.Context, t *testctx.T) {
	runFormatCases(t, DefaultOptions(), []formatCase{
		{
			name: "declaration after nofmt is untouched",
			input: `// nofmt
resource R r {
  a   =   1
}
resource S s {
  a   =   1
}`,
			expected: `// nofmt
resource R r {
  a   =   1
}
resource S s {
    a = 1
}
`,
		},
	})
}

func (FormatSuite) TestOptions(ctx context.Context, t *testctx.T) {
	input := `resource Bucket photos {
  name = "photos"
  versioning = true
  tags = {
    a: 1,
    bbb: 2
  }
}`

	t.Run("indent size", func(ctx context.Context, t *testctx.T) {
		opts := DefaultOptions()
		opts.IndentSize = 2
		require.Equal(t, `resource Bucket photos {
  name       = "photos"
  versioning = true
  tags       = {
    a  : 1,
    bbb: 2
  }
}
`, Format([]byte(input), opts))
	})

	t.Run("no alignment", func(ctx context.Context, t *testctx.T) {
		opts := DefaultOptions()
		opts.AlignAssignments = false
		opts.AlignColons = false
		require.Equal(t, `resource Bucket photos {
    name = "photos"
    versioning = true
    tags = {
        a: 1,
        bbb: 2
    }
}
`, Format([]byte(input), opts))
	})

	t.Run("no blank lines", func(ctx context.Context, t *testctx.T) {
		opts := DefaultOptions()
		opts.KeepBlankLines = 0
		require.Equal(t, "input string a = 1\ninput string b = 2\n",
			Format([]byte("input string a = 1\n\n\ninput string b = 2\n"), opts))
	})
}

func (FormatSuite) TestMalformedInput(ctx context.Context, t *testctx.T) {
	inputs := []string{
		"resource A a {\n  tag = {\n    a: 1\n",
		"resource A a {\n  tags = [1, 2\n}\n",
		"schema S {\n  string\n  = 1\n  number\n}",
		"}}} ((( [[[ @@ === ",
		"fun f(a: string {\n  return a\n",
		"@provider(\n  region:\n",
		"input = = =",
		"resource",
		"\"unterminated\nresource A a {}",
		"/* unterminated",
		"§ ¶ resource A a { name = \"é\" }",
	}
	for _, input := range inputs {
		t.Run(input, func(ctx context.Context, t *testctx.T) {
			var result string
			require.NotPanics(t, func() {
				result = Format([]byte(input), DefaultOptions())
			})
			require.Equal(t, result, Format([]byte(result), DefaultOptions()), "not idempotent")
		})
	}
}

func (FormatSuite) TestEmpty(ctx context.Context, t *testctx.T) {
	require.Equal(t, "", Format(nil, DefaultOptions()))
	require.Equal(t, "", Format([]byte("  \n\n\t\n"), DefaultOptions()))
}

func (FormatSuite) TestFormatWithResult(ctx context.Context, t *testctx.T) {
	res := FormatWithResult([]byte("resource A a {}\n"), DefaultOptions())
	require.False(t, res.Changed)
	require.Equal(t, "resource A a {}\n", res.Content)

	res = FormatWithResult([]byte("resource   A a {}"), DefaultOptions())
	require.True(t, res.Changed)
	require.Equal(t, "resource A a {}\n", res.Content)
}

func TestFormatFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/main.kite"
	require.NoError(t, os.WriteFile(path, []byte("resource   A a {}"), 0o644))

	out, err := FormatFile(path, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, "resource A a {}\n", out)

	_, err = FormatFile(dir+"/missing.kite", DefaultOptions())
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "missing.kite"))
}
