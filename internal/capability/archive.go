package capability

import (
	"context"

	"github.com/raphi011/catalyst/internal/archive"
)

func (h *Host) zip(_ context.Context, args Args) (any, error) {
	paths, err := args.Strings(0)
	if err != nil {
		return nil, err
	}
	dest, err := args.String(1)
	if err != nil {
		return nil, err
	}
	for i, p := range paths {
		paths[i] = h.resolve(p)
	}
	return nil, archive.Zip(paths, h.resolve(dest))
}

func (h *Host) unzip(_ context.Context, args Args) (any, error) {
	src, err := args.String(0)
	if err != nil {
		return nil, err
	}
	dest, err := args.String(1)
	if err != nil {
		return nil, err
	}
	return nil, archive.Unzip(h.resolve(src), h.resolve(dest))
}
