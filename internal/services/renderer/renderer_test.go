package renderer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
)

func stubRunner(t *testing.T, mode string, captured *[][]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if captured != nil {
			*captured = append(*captured, append([]string(nil), args...))
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "RUNNER_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestNewCLIOptions(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/remotion"), WithEntryPoint("src/Root.tsx"), WithPublicDir("/data/assets"))
	if cli.binary != "/opt/remotion" || cli.entryPoint != "src/Root.tsx" || cli.publicDir != "/data/assets" {
		t.Fatalf("options not applied: %+v", cli)
	}
}

func TestBundleReturnsServeLocation(t *testing.T) {
	var captured [][]string
	stubRunner(t, "bundle", &captured)

	cli := NewCLI(WithPublicDir("/data/assets"))
	serveURL, err := cli.Bundle(context.Background())
	if err != nil {
		t.Fatalf("Bundle: %v", err)
	}
	if serveURL != "/tmp/bundle-xyz" {
		t.Fatalf("unexpected serve location %q", serveURL)
	}
	args := captured[0]
	if args[0] != "bundle" {
		t.Fatalf("expected bundle subcommand, got %v", args)
	}
	if findArg(args, "--public-dir") == -1 {
		t.Fatalf("expected --public-dir flag, got %v", args)
	}
}

func TestBundleWithoutServeLocationFails(t *testing.T) {
	stubRunner(t, "empty", nil)
	if _, err := NewCLI().Bundle(context.Background()); err == nil {
		t.Fatal("expected error when runner emits no serve location")
	}
}

func TestSelectCompositionParsesDescriptor(t *testing.T) {
	var captured [][]string
	stubRunner(t, "composition", &captured)

	comp, err := NewCLI().SelectComposition(context.Background(), "/tmp/bundle-xyz", "HelloWorld", map[string]any{"questionNumber": 1})
	if err != nil {
		t.Fatalf("SelectComposition: %v", err)
	}
	if comp.ID != "HelloWorld" || comp.Width != 1920 || comp.Height != 1080 {
		t.Fatalf("unexpected composition %+v", comp)
	}
	if findArg(captured[0], "--props") == -1 {
		t.Fatalf("expected props to be forwarded, got %v", captured[0])
	}
}

func TestRenderReportsProgress(t *testing.T) {
	stubRunner(t, "render", nil)

	var updates []ProgressUpdate
	comp := Composition{ID: "HelloWorld"}
	err := NewCLI().Render(context.Background(), comp, "/tmp/bundle-xyz", "/tmp/question-1.mp4", map[string]any{}, func(u ProgressUpdate) {
		updates = append(updates, u)
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(updates) != 2 || updates[1].Percent != 100 {
		t.Fatalf("unexpected progress updates %+v", updates)
	}
}

func TestRenderFailureSurfacesRunnerError(t *testing.T) {
	stubRunner(t, "failure", nil)

	comp := Composition{ID: "HelloWorld"}
	err := NewCLI().Render(context.Background(), comp, "/tmp/bundle-xyz", "/tmp/question-1.mp4", nil, nil)
	if err == nil {
		t.Fatal("expected render failure")
	}
}

func TestRenderValidatesArguments(t *testing.T) {
	cli := NewCLI()
	comp := Composition{ID: "HelloWorld"}
	if err := cli.Render(context.Background(), comp, "", "/out.mp4", nil, nil); err == nil {
		t.Fatal("expected error without serve location")
	}
	if err := cli.Render(context.Background(), comp, "/tmp/bundle", "", nil, nil); err == nil {
		t.Fatal("expected error without output path")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("RUNNER_HELPER_MODE") {
	case "bundle":
		fmt.Println(`{"message":"bundling"}`)
		fmt.Println(`{"serveUrl":"/tmp/bundle-xyz"}`)
		os.Exit(0)
	case "composition":
		fmt.Println(`{"composition":{"id":"HelloWorld","width":1920,"height":1080,"fps":30,"durationInFrames":900}}`)
		os.Exit(0)
	case "render":
		fmt.Println(`{"percent":50,"message":"rendering"}`)
		fmt.Println("not-json")
		fmt.Println(`{"percent":100,"message":"done"}`)
		os.Exit(0)
	case "failure":
		fmt.Println(`{"error":"composition crashed"}`)
		os.Exit(1)
	case "empty":
		os.Exit(0)
	default:
		os.Exit(0)
	}
}

func findArg(args []string, target string) int {
	for i, arg := range args {
		if arg == target {
			return i
		}
	}
	return -1
}
