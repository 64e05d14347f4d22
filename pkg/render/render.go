// Package render turns a ranked comment forest into a standalone HTML
// document with nested reply blocks and per-comment deep links.
package render

import (
	"bytes"
	"context"
	"fmt"

	"thirdcoast.systems/threadr/pkg/comments"
)

// Render serializes forest into an HTML document. It performs no I/O.
func Render(ctx context.Context, forest comments.Forest, meta Meta, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Document(forest, meta, opts).Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}
	return buf.Bytes(), nil
}
