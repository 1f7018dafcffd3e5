package api

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// GeneratePatch returns the JSON merge patch (RFC 7386) that turns
// initial into fields. Each omit path (gjson dot syntax) is removed from
// initial first, so those keys are never nulled out by the patch. Equal
// documents produce {}.
func GeneratePatch(initial, fields any, omit ...string) (json.RawMessage, error) {
	orig, err := json.Marshal(initial)
	if err != nil {
		return nil, fmt.Errorf("marshal initial values: %w", err)
	}
	mod, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal field values: %w", err)
	}

	doc := string(orig)
	for _, path := range omit {
		if !gjson.Get(doc, path).Exists() {
			continue
		}
		if doc, err = sjson.Delete(doc, path); err != nil {
			return nil, fmt.Errorf("omitting %q: %w", path, err)
		}
	}

	patch, err := jsonpatch.CreateMergePatch([]byte(doc), mod)
	if err != nil {
		return nil, fmt.Errorf("create merge patch: %w", err)
	}
	return patch, nil
}

// GeneratePatchAs is GeneratePatch decoded into a U.
func GeneratePatchAs[U any](initial any, fields U, omit ...string) (U, error) {
	var out U
	patch, err := GeneratePatch(initial, fields, omit...)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(patch, &out); err != nil {
		return out, fmt.Errorf("decode patch: %w", err)
	}
	return out, nil
}

// ApplyPatch applies a merge patch to doc.
func ApplyPatch(doc, patch []byte) ([]byte, error) {
	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, fmt.Errorf("apply merge patch: %w", err)
	}
	return out, nil
}
