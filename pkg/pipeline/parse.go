package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/jsonview/pkg/errors"
	"github.com/matzehuels/jsonview/pkg/observability"
	"github.com/matzehuels/jsonview/pkg/tree"
	"github.com/matzehuels/jsonview/pkg/value"
)

// Decode parses opts.Input according to opts.InputFormat.
func Decode(ctx context.Context, opts Options) (value.Value, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return value.Value{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, opts.InputFormat, len(opts.Input))
	start := time.Now()

	var (
		v   value.Value
		err error
	)
	switch opts.InputFormat {
	case InputJSON:
		v, err = value.ParseJSON(opts.Input)
	case InputYAML:
		v, err = value.ParseYAML(opts.Input)
	case InputTOML:
		v, err = value.ParseTOML(opts.Input)
	default:
		err = errors.New(errors.ErrCodeInvalidFormat, "unsupported input format: %s", opts.InputFormat)
	}

	hooks.OnDecodeComplete(ctx, opts.InputFormat, time.Since(start), err)
	return v, err
}

// Build creates the tree for v with the build options in opts.
func Build(ctx context.Context, v value.Value, opts Options) *tree.Node {
	start := time.Now()
	root := tree.Build(v, opts.TreeOptions()...)
	observability.Pipeline().OnBuild(ctx, root.Count(), time.Since(start))
	return root
}
