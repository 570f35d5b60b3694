package model

import (
	"errors"
	"fmt"
)

// ErrNoPanelsToPack is returned when metrics are requested for a result
// that used no sheets (nothing was packed).
var ErrNoPanelsToPack = errors.New("no panels to pack")

// InvalidDimensionsError reports a panel request with a non-positive
// width, height, or depth.
type InvalidDimensionsError struct {
	RequestIndex int
	Label        string
	Width        float64
	Height       float64
	Depth        float64
}

func (e *InvalidDimensionsError) Error() string {
	return fmt.Sprintf("invalid panel dimensions for request %d (%s): %.1f x %.1f x %.1f mm",
		e.RequestIndex, e.Label, e.Width, e.Height, e.Depth)
}

// PanelTooLargeError reports a panel that cannot fit the stock sheet in
// either orientation.
type PanelTooLargeError struct {
	Panel       Panel
	SheetWidth  float64
	SheetHeight float64
}

func (e *PanelTooLargeError) Error() string {
	return fmt.Sprintf("panel %s (%s, %.1f x %.1f mm) does not fit sheet %.1f x %.1f mm in any orientation",
		e.Panel.ID, e.Panel.Label, e.Panel.Width, e.Panel.Height, e.SheetWidth, e.SheetHeight)
}

// InvalidSheetError reports non-positive stock sheet dimensions.
type InvalidSheetError struct {
	Width  float64
	Height float64
}

func (e *InvalidSheetError) Error() string {
	return fmt.Sprintf("invalid sheet dimensions: %.1f x %.1f mm", e.Width, e.Height)
}
