package jump

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takaishi/graphql-jump/locator"
	"github.com/takaishi/graphql-jump/search"
)

type fakeLocator struct {
	result *locator.Result
	err    error
	bases  []string
}

func (f *fakeLocator) Locate(ctx context.Context, dir, base string) (*locator.Result, error) {
	f.bases = append(f.bases, base)
	return f.result, f.err
}

type navigation struct {
	path         string
	line, column int
}

type fakeNavigator struct {
	calls []navigation
	err   error
}

func (f *fakeNavigator) Navigate(ctx context.Context, path string, line, column int) error {
	f.calls = append(f.calls, navigation{path, line, column})
	return f.err
}

type message struct {
	level, text string
}

type recorder struct {
	messages []message
}

func (r *recorder) Info(msg string)  { r.messages = append(r.messages, message{"info", msg}) }
func (r *recorder) Warn(msg string)  { r.messages = append(r.messages, message{"warn", msg}) }
func (r *recorder) Error(msg string) { r.messages = append(r.messages, message{"error", msg}) }

func (r *recorder) last() message {
	if len(r.messages) == 0 {
		return message{}
	}
	return r.messages[len(r.messages)-1]
}

type fixture struct {
	locator  *fakeLocator
	nav      *fakeNavigator
	notifier *recorder
	jumper   *Jumper
}

func newFixture(host Host, words WordFunc) *fixture {
	f := &fixture{
		locator:  &fakeLocator{},
		nav:      &fakeNavigator{},
		notifier: &recorder{},
	}
	f.jumper = New(Deps{
		Host:      host,
		Locator:   f.locator,
		Navigator: f.nav,
		Notifier:  f.notifier,
		Words:     words,
	})
	return f
}

func noWords(path string, line, column int) (string, bool, error) {
	return "", false, nil
}

func userResult() *locator.Result {
	return &locator.Result{
		Base:  "User",
		Stage: locator.StageOperation,
		Hit:   search.Hit{File: "src/schema/user.graphql", Line: 42, Column: 7},
		Lines: []string{"src/schema/user.graphql:42:7:query UserQuery {"},
	}
}

func TestGoGraphqlWithTerm(t *testing.T) {
	f := newFixture(StaticHost{Root: "/ws"}, noWords)
	f.locator.result = userResult()

	out, err := f.jumper.GoGraphql(context.Background(), "UserQuery")
	require.NoError(t, err)

	assert.Equal(t, []string{"User"}, f.locator.bases)
	assert.Equal(t, filepath.Join("/ws", "src/schema/user.graphql"), out.Path)
	assert.Equal(t, []navigation{{filepath.Join("/ws", "src/schema/user.graphql"), 42, 7}}, f.nav.calls)
	assert.Equal(t, message{"info", "Jumped to user.graphql:42:7"}, f.notifier.last())
}

func TestGoGraphqlTrimsTerm(t *testing.T) {
	f := newFixture(StaticHost{Root: "/ws"}, noWords)
	f.locator.result = userResult()

	out, err := f.jumper.GoGraphql(context.Background(), " UserQuery\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"User"}, f.locator.bases)
	assert.Equal(t, "UserQuery", out.Term)
}

func TestGoGraphqlNoWorkspace(t *testing.T) {
	f := newFixture(StaticHost{}, noWords)

	_, err := f.jumper.GoGraphql(context.Background(), "UserQuery")
	assert.ErrorIs(t, err, ErrNoWorkspace)
	assert.Empty(t, f.locator.bases, "no search may run without a workspace")
	assert.Equal(t, message{"error", "No workspace folder found"}, f.notifier.last())
}

func TestGoGraphqlEmptyTerm(t *testing.T) {
	f := newFixture(StaticHost{Root: "/ws"}, noWords)

	_, err := f.jumper.Find(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptySearchTerm)
	assert.Empty(t, f.locator.bases)
}

func TestGoGraphqlNoMatches(t *testing.T) {
	f := newFixture(StaticHost{Root: "/ws"}, noWords)
	f.locator.err = locator.ErrNoMatches

	_, err := f.jumper.GoGraphql(context.Background(), "MissingFragment")
	assert.ErrorIs(t, err, locator.ErrNoMatches)
	assert.Empty(t, f.nav.calls)
	assert.Equal(t, message{"warn", "No matches: Missing (.graphql only, excluding *persisted*)"}, f.notifier.last())
}

func TestGoGraphqlParseFailure(t *testing.T) {
	f := newFixture(StaticHost{Root: "/ws"}, noWords)
	f.locator.err = &locator.ParseError{Line: "garbage"}

	_, err := f.jumper.GoGraphql(context.Background(), "User")

	var parseErr *locator.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Empty(t, f.nav.calls)
	assert.Equal(t, message{"error", "Failed to parse ripgrep output"}, f.notifier.last())
}

func TestGoGraphqlSearchFailure(t *testing.T) {
	f := newFixture(StaticHost{Root: "/ws"}, noWords)
	f.locator.err = &search.ExecError{ExitCode: 2, Stderr: "bad regex"}

	_, err := f.jumper.GoGraphql(context.Background(), "User")

	var execErr *search.ExecError
	assert.True(t, errors.As(err, &execErr))
	assert.Equal(t, "error", f.notifier.last().level)
	assert.Contains(t, f.notifier.last().text, "Search failed: ")
}

func TestGoGraphqlNavigationFailure(t *testing.T) {
	f := newFixture(StaticHost{Root: "/ws"}, noWords)
	f.locator.result = userResult()
	f.nav.err = errors.New("permission denied")

	out, err := f.jumper.GoGraphql(context.Background(), "User")

	var navErr *NavigationError
	require.True(t, errors.As(err, &navErr))
	assert.Equal(t, filepath.Join("/ws", "src/schema/user.graphql"), navErr.Path)
	assert.NotNil(t, out)
	assert.Equal(t, message{"error", "Failed to open file: permission denied"}, f.notifier.last())
}

func TestGoGraphqlCurrentWord(t *testing.T) {
	var gotPath string
	words := func(path string, line, column int) (string, bool, error) {
		gotPath = path
		assert.Equal(t, 3, line)
		assert.Equal(t, 12, column)
		return "FooBarFragment", true, nil
	}
	host := StaticHost{Root: "/ws", Selection: &Selection{File: "web/App.tsx", Line: 3, Column: 12}}
	f := newFixture(host, words)
	f.locator.result = userResult()

	_, err := f.jumper.GoGraphqlCurrentWord(context.Background())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/ws", "web/App.tsx"), gotPath)
	assert.Equal(t, []string{"FooBar"}, f.locator.bases)
	assert.Len(t, f.nav.calls, 1)
}

func TestGoGraphqlCurrentWordNoSelection(t *testing.T) {
	f := newFixture(StaticHost{Root: "/ws"}, noWords)

	_, err := f.jumper.GoGraphqlCurrentWord(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveContext)
	assert.Equal(t, message{"error", "No active editor"}, f.notifier.last())
}

func TestGoGraphqlCurrentWordNoWord(t *testing.T) {
	host := StaticHost{Root: "/ws", Selection: &Selection{File: "a.ts", Line: 1, Column: 1}}
	f := newFixture(host, noWords)

	_, err := f.jumper.GoGraphqlCurrentWord(context.Background())
	assert.ErrorIs(t, err, ErrNoWordAtCursor)
	assert.ErrorIs(t, err, ErrNoActiveContext)
	assert.Equal(t, message{"error", "No word at cursor position"}, f.notifier.last())
	assert.Empty(t, f.locator.bases)
}

func TestGoGraphqlCurrentWordReadError(t *testing.T) {
	words := func(path string, line, column int) (string, bool, error) {
		return "", false, os.ErrNotExist
	}
	host := StaticHost{Root: "/ws", Selection: &Selection{File: "gone.ts", Line: 1, Column: 1}}
	f := newFixture(host, words)

	_, err := f.jumper.GoGraphqlCurrentWord(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveContext)
}

func TestWithHost(t *testing.T) {
	f := newFixture(StaticHost{}, noWords)
	f.locator.result = userResult()

	_, err := f.jumper.WithHost(StaticHost{Root: "/other"}).GoGraphql(context.Background(), "User")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/other", "src/schema/user.graphql"), f.nav.calls[0].path)

	_, err = f.jumper.GoGraphql(context.Background(), "User")
	assert.ErrorIs(t, err, ErrNoWorkspace, "original jumper keeps its host")
}

func TestGoGraphqlEndToEnd(t *testing.T) {
	requireRipgrep(t)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "schema"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "schema", "foo.graphql"),
		[]byte("# Foo\n\nfragment FooBar on Type { id }\n"), 0o644))

	nav := &fakeNavigator{}
	notifier := &recorder{}
	j := New(Deps{
		Host:      StaticHost{Root: root},
		Locator:   locator.New(search.NewRunner(search.Options{})),
		Navigator: nav,
		Notifier:  notifier,
		Words:     noWords,
	})

	out, err := j.GoGraphql(context.Background(), "FooBarFragment")
	require.NoError(t, err)

	assert.Equal(t, search.Hit{File: "schema/foo.graphql", Line: 3, Column: 1}, out.Result.Hit)
	assert.Equal(t, []navigation{{filepath.Join(root, "schema", "foo.graphql"), 3, 1}}, nav.calls)
}

// requireRipgrep skips without rg unless GRAPHQL_JUMP_TEST_RG is set, in
// which case a missing rg fails the test.
func requireRipgrep(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("rg"); err != nil {
		if os.Getenv("GRAPHQL_JUMP_TEST_RG") != "" {
			t.Fatalf("GRAPHQL_JUMP_TEST_RG is set but rg is unavailable: %v", err)
		}
		t.Skip("rg not installed")
	}
}
