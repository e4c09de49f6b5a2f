package render

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultCommand is the Graphviz executable used by Exec.
const DefaultCommand = "dot"

// Exec renders by running the Graphviz dot executable.
type Exec struct {
	Command string      // Executable name or path; DefaultCommand if empty
	Logger  *log.Logger // Receives renderer output at debug level
}

// Args returns the command line arguments used to render dotFile.
func (e *Exec) Args(dotFile, outFile string, format Format) []string {
	return []string{"-T" + string(format), dotFile, "-o", outFile}
}

// Render runs the renderer and waits for it. Standard output and standard
// error are captured and logged; a missing executable or a non-zero exit
// status yields *RenderError.
func (e *Exec) Render(ctx context.Context, dotFile, outFile string, format Format) (err error) {
	defer observe(ctx, KindExec, format)(&err)

	command := e.Command
	if command == "" {
		command = DefaultCommand
	}
	args := e.Args(dotFile, outFile, format)

	path, err := exec.LookPath(command)
	if err != nil {
		return &RenderError{
			Command:  command,
			Args:     args,
			ExitCode: -1,
			Err:      fmt.Errorf("%w (install Graphviz or use --renderer builtin)", err),
		}
	}

	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.debug("running renderer", "command", command, "args", strings.Join(args, " "))
	runErr := cmd.Run()

	e.logLines("stdout", stdout.String())
	e.logLines("stderr", stderr.String())

	if runErr == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	re := &RenderError{
		Command:  command,
		Args:     args,
		ExitCode: -1,
		Stderr:   strings.TrimSpace(stderr.String()),
		Err:      runErr,
	}
	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		re.ExitCode = exitErr.ExitCode()
		re.Err = nil
	}
	return re
}

func (e *Exec) debug(msg string, kv ...any) {
	if e.Logger != nil {
		e.Logger.Debug(msg, kv...)
	}
}

func (e *Exec) logLines(stream, out string) {
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			e.debug("renderer output", "stream", stream, "line", line)
		}
	}
}
