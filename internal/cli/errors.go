package cli

import (
	"errors"

	"github.com/spf13/cobra"

	pkgerrors "github.com/matzehuels/deprank/pkg/errors"
	"github.com/matzehuels/deprank/pkg/graph"
	"github.com/matzehuels/deprank/pkg/graph/transform"
	"github.com/matzehuels/deprank/pkg/render"
	"github.com/matzehuels/deprank/pkg/render/nodelink"
)

// classifiers map domain errors to error codes. CycleError comes before
// the unknown-project sentinel because a dangling reference unwraps to it.
var classifiers = []pkgerrors.Classifier{
	func(err error) (pkgerrors.Code, bool) {
		var ce *transform.CycleError
		return pkgerrors.ErrCodeCycleOrMissingReference, errors.As(err, &ce)
	},
	func(err error) (pkgerrors.Code, bool) {
		return pkgerrors.ErrCodeDuplicateProject, errors.Is(err, graph.ErrDuplicateProject)
	},
	func(err error) (pkgerrors.Code, bool) {
		return pkgerrors.ErrCodeUnknownProject, errors.Is(err, graph.ErrUnknownProject)
	},
	func(err error) (pkgerrors.Code, bool) {
		var ne *nodelink.NodeNameCollisionError
		return pkgerrors.ErrCodeNodeNameCollision, errors.As(err, &ne)
	},
	func(err error) (pkgerrors.Code, bool) {
		var re *render.RenderError
		return pkgerrors.ErrCodeRendering, errors.As(err, &re)
	},
}

// classifyError attaches an error code to err.
func classifyError(err error) error {
	return pkgerrors.Classify(err, classifiers...)
}

// flagError codes flag parsing failures as invalid input.
func flagError(_ *cobra.Command, err error) error {
	return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "invalid arguments")
}

// exactArgs is cobra.ExactArgs with a coded error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "invalid arguments")
		}
		return nil
	}
}
