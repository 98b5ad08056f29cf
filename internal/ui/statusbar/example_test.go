package statusbar_test

import (
	"fmt"

	"github.com/riordanpawley/quadrant/internal/domain"
	"github.com/riordanpawley/quadrant/internal/types"
	"github.com/riordanpawley/quadrant/internal/ui/statusbar"
	"github.com/riordanpawley/quadrant/internal/ui/styles"
)

// Example demonstrates how to use the StatusBar
func Example() {
	style := styles.New()

	sb := statusbar.New(types.ModeNormal, 80, style).WithInfo(statusbar.Info{
		Visible: 3,
		Filter:  domain.NewFilter(),
	})

	rendered := sb.Render()

	fmt.Println(len(rendered) > 0)
	// Output: true
}

// ExampleGetHints shows how to get hints for different modes
func ExampleGetHints() {
	fmt.Println(statusbar.GetHints(types.ModeGoto))
	// Output: g: top  e: end  w: jump  1-5: lane  Esc: cancel
}

func ExampleFilterSummary() {
	f := domain.NewFilter()
	f.TagMode = domain.TagModeAnd
	f.SetTags([]string{"work", "Urgent-Fix"})
	f.ToggleStatus(domain.StateWIP)
	f.Urgent = domain.BoolPtr(false)

	fmt.Println(statusbar.FilterSummary(f))
	// Output: #urgent-fix+work W not urgent
}
