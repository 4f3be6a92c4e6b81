package cli_test

import (
	"bytes"
	"context"
	"testing"

	"godo/internal/app"
	"godo/internal/cli"
	"godo/internal/commands"
	"godo/internal/config"
	"godo/internal/exitcode"
	"godo/internal/testutil"
)

// testFactory creates an app factory backed by an in-memory fixture.
func testFactory(fx *testutil.Fixture) cli.AppFactory {
	return func(ctx context.Context, cfg *config.Config) (*app.App, error) {
		return fx.App, nil
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	fx := testutil.NewFixture()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(fx))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	fx := testutil.NewFixture()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(fx))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	fx := testutil.NewFixture()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(fx))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Usage:")) {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	fx := testutil.NewFixture()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(fx))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if stdout.String() != "godo 0.1.0\n" {
		t.Errorf("expected 'godo 0.1.0\\n', got %q", stdout.String())
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	fx := testutil.NewFixture()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(fx))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_AddThenList(t *testing.T) {
	fx := testutil.NewFixture()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(fx))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"add", "--quiet", "buy milk"}, &stdout, &stderr)
	if code != exitcode.Success {
		t.Fatalf("add: expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr.String())
	}

	stdout.Reset()
	stderr.Reset()
	code = dispatcher.Run(context.Background(), []string{"list", "--bucket", "inbox"}, &stdout, &stderr)
	if code != exitcode.Success {
		t.Fatalf("list: expected exit code %d, got %d (stderr: %q)", exitcode.Success, code, stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("buy milk")) {
		t.Errorf("expected list output to contain added task, got %q", stdout.String())
	}
}
