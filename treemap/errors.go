package treemap

import "github.com/erigontech/cachecore/cerrors"

func outOfRange[K any](k K) error {
	return cerrors.Wrap(cerrors.ErrIllegalArgument, "key %v outside view bounds", k)
}

func noSuchElement(what string) error {
	return cerrors.Wrap(cerrors.ErrNoSuchElement, "%s", what)
}
