// Package source loads the vehicle catalog from a file, an HTTP endpoint or
// an S3 bucket.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/muhammadmuzzammil1998/jsonc"

	"github.com/autopeer-io/voltura/internal/configurator/core/model"
)

// ErrEmptyPayload is returned when the catalog payload holds no array.
var ErrEmptyPayload = errors.New("empty catalog payload")

// Decode parses a catalog payload. Comments are allowed; the top level must
// be a JSON array of vehicles.
func Decode(data []byte) ([]model.Vehicle, error) {
	data = bytes.TrimSpace(jsonc.ToJSON(data))
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, ErrEmptyPayload
	}

	var vehicles []model.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	for i := range vehicles {
		vehicles[i].Normalize()
	}
	return vehicles, nil
}
