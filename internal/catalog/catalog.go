// Package catalog normalizes a cutting list into the flat sequence of
// individual panels the packing engine consumes.
package catalog

import (
	"fmt"

	"github.com/piwi3910/plycut/internal/model"
)

// Expand flattens panel requests into individual panel instances. The output
// preserves request order and emits the copies of each request consecutively,
// so the packer's area sort breaks ties in catalog order.
//
// A request with quantity 0 contributes no panels and is not an error. A
// request with non-positive width, height, or depth and a positive quantity
// fails with a model.InvalidDimensionsError naming the request.
func Expand(requests []model.PanelRequest) ([]model.Panel, error) {
	var panels []model.Panel
	for i, r := range requests {
		if r.Quantity <= 0 {
			continue
		}
		if r.Width <= 0 || r.Height <= 0 || r.Depth <= 0 {
			return nil, &model.InvalidDimensionsError{
				RequestIndex: i,
				Label:        r.Label,
				Width:        r.Width,
				Height:       r.Height,
				Depth:        r.Depth,
			}
		}
		for n := 0; n < r.Quantity; n++ {
			panels = append(panels, model.Panel{
				ID:     fmt.Sprintf("%s-%d", r.ID, n+1),
				Label:  r.Label,
				Width:  r.Width,
				Height: r.Height,
				Depth:  r.Depth,
			})
		}
	}
	return panels, nil
}
