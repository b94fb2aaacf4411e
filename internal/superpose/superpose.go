// Package superpose drives the CCP4 structure superposition programs
// (SSM "superpose" and "gesamt") over a static structure and a set of
// mobile ones.
package superpose

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
)

var ErrNoTools = errors.New("no superposition tool selected")

// Tool is a superposition program. Prefix names its output files.
type Tool struct {
	Prefix string
	Binary string
}

// SSM is the CCP4 "superpose" program.
func SSM() Tool {
	return Tool{Prefix: "ssm", Binary: config.GetToolBinary("superpose")}
}

// Gesamt is the CCP4 "gesamt" program.
func Gesamt() Tool {
	return Tool{Prefix: "gesamt", Binary: config.GetToolBinary("gesamt")}
}

// ToolByName resolves "ssm"/"superpose" and "gesamt".
func ToolByName(name string) (Tool, error) {
	switch strings.ToLower(name) {
	case "ssm", "superpose":
		return SSM(), nil
	case "gesamt":
		return Gesamt(), nil
	default:
		return Tool{}, fmt.Errorf("unknown superposition tool %q", name)
	}
}

// OutputName is "<prefix>_<mobile id>_to_<static id>.pdb", where an id is the
// first four characters of the file name.
func OutputName(tool Tool, mobile, static string) string {
	return fmt.Sprintf("%s_%s_to_%s.pdb", tool.Prefix, structureID(mobile), structureID(static))
}

func structureID(path string) string {
	base := filepath.Base(path)
	if len(base) > 4 {
		return base[:4]
	}
	return base
}

// Job superposes Mobile onto Static and writes the result to Output.
type Job struct {
	Tool   Tool
	Static string
	Mobile string
	Output string
}

// Args is the command line: <binary> <static> <mobile> -o <output>.
func (j Job) Args() []string {
	return []string{j.Tool.Binary, j.Static, j.Mobile, "-o", j.Output}
}

func (j Job) String() string {
	return strings.Join(j.Args(), " ")
}

// Plan builds one job per tool and mobile structure. Outputs go to outDir.
func Plan(tools []Tool, static string, mobiles []string, outDir string) ([]Job, error) {
	if len(tools) == 0 {
		return nil, ErrNoTools
	}
	var jobs []Job
	for _, m := range mobiles {
		for _, t := range tools {
			jobs = append(jobs, Job{
				Tool:   t,
				Static: static,
				Mobile: m,
				Output: filepath.Join(outDir, OutputName(t, m, static)),
			})
		}
	}
	return jobs, nil
}

// CommandRunner runs a command line and returns its combined output.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Runner executes superposition jobs one after another.
type Runner struct {
	Run    CommandRunner
	Logger *zap.SugaredLogger
}

// NewRunner runs jobs as subprocesses and logs through the config logger.
func NewRunner() *Runner {
	return &Runner{Run: execRunner, Logger: config.GetLogger()}
}

// Execute runs every job. A failing job does not stop the others; all
// failures are returned joined.
func (r *Runner) Execute(ctx context.Context, jobs []Job) error {
	var errs []error
	for _, j := range jobs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		r.Logger.Infow("Running superposition", "command", j.String())
		args := j.Args()
		out, err := r.Run(ctx, args[0], args[1:]...)
		if err != nil {
			r.Logger.Errorw("Superposition failed", "command", j.String(), "output", string(out), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", j.Tool.Prefix, err))
			continue
		}
		r.Logger.Debugw("Superposition finished", "output", j.Output)
	}
	return errors.Join(errs...)
}
