package restclient

import (
	"context"
	"fmt"

	resterrors "github.com/mkaraca/restkit/errors"
)

// ResourceChecker probes whether a resource has finished deleting. Resource
// clients supply one through WithResourceChecker.
type ResourceChecker interface {
	IsResourceDeleted(ctx context.Context, id string) (bool, error)
}

// ResourceCheckerFunc adapts a function to the ResourceChecker interface.
type ResourceCheckerFunc func(ctx context.Context, id string) (bool, error)

// IsResourceDeleted calls f.
func (f ResourceCheckerFunc) IsResourceDeleted(ctx context.Context, id string) (bool, error) {
	return f(ctx, id)
}

// WaitForResourceDeletion polls the resource checker until the resource is
// gone, the build timeout elapses, or the context is canceled. The first
// probe happens immediately; subsequent probes are BuildInterval apart.
func (c *Client) WaitForResourceDeletion(ctx context.Context, id string) error {
	if c.checker == nil {
		return resterrors.CapabilityNotImplemented(
			fmt.Sprintf("%s client does not support deletion detection", c.resourceType))
	}

	start := c.now()
	for {
		deleted, err := c.checker.IsResourceDeleted(ctx, id)
		if err != nil {
			return err
		}
		if deleted {
			return nil
		}
		if c.now().Sub(start) >= c.cfg.BuildTimeout {
			return resterrors.Timeout(fmt.Sprintf(
				"failed to delete %s %s within the required time (%s)",
				c.resourceType, id, c.cfg.BuildTimeout))
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		c.sleep(c.cfg.BuildInterval)
	}
}
