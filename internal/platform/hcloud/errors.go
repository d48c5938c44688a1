package hcloud

import (
	"errors"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/rlcluster/internal/platform"
)

// isHCloudErrorCode checks if the error is an hcloud API error with one of the given codes.
func isHCloudErrorCode(err error, codes ...hcloud.ErrorCode) bool {
	if err == nil {
		return false
	}

	var hcloudErr hcloud.Error
	if errors.As(err, &hcloudErr) {
		for _, code := range codes {
			if hcloudErr.Code == code {
				return true
			}
		}
	}
	return false
}

// notFound reports a missing resource as platform.ErrNotFound.
func notFound(resourceType, name string) error {
	return fmt.Errorf("%s %s: %w", resourceType, name, platform.ErrNotFound)
}

// mapNotFound converts an hcloud not_found API error.
func mapNotFound(err error) error {
	if isHCloudErrorCode(err, hcloud.ErrorCodeNotFound) {
		return fmt.Errorf("%w: %w", platform.ErrNotFound, err)
	}
	return err
}
