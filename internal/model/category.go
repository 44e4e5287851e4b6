package model

// Category identifies the visual condition detected on a grow bag or
// fruiting body. The set is closed: every class label the trained model can
// emit maps to exactly one Category, and anything unrecognized maps to
// CategoryUnknown rather than failing.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryBacterialBlotch
	CategoryDryBubble
	CategoryGreenMold
	CategoryHealthyFruitingBag
	CategoryHealthyMushroom
)

// Class labels as exported with the trained model.
const (
	labelBacterialBlotch    = "bacterial_blotch_disease"
	labelDryBubble          = "dry_bubble_disease"
	labelGreenMold          = "green_molds_disease"
	labelHealthyFruitingBag = "healthy_fruiting_bag"
	labelHealthyMushroom    = "healthy_mushroom"
)

// ParseCategory maps a model class label to its Category.
// Unrecognized labels resolve to CategoryUnknown — never an error.
func ParseCategory(label string) Category {
	switch label {
	case labelBacterialBlotch:
		return CategoryBacterialBlotch
	case labelDryBubble:
		return CategoryDryBubble
	case labelGreenMold:
		return CategoryGreenMold
	case labelHealthyFruitingBag:
		return CategoryHealthyFruitingBag
	case labelHealthyMushroom:
		return CategoryHealthyMushroom
	default:
		return CategoryUnknown
	}
}

// String returns the model class label for the category, or "unknown".
func (c Category) String() string {
	switch c {
	case CategoryBacterialBlotch:
		return labelBacterialBlotch
	case CategoryDryBubble:
		return labelDryBubble
	case CategoryGreenMold:
		return labelGreenMold
	case CategoryHealthyFruitingBag:
		return labelHealthyFruitingBag
	case CategoryHealthyMushroom:
		return labelHealthyMushroom
	default:
		return "unknown"
	}
}

// Categories returns all known categories, excluding CategoryUnknown.
func Categories() []Category {
	return []Category{
		CategoryBacterialBlotch,
		CategoryDryBubble,
		CategoryGreenMold,
		CategoryHealthyFruitingBag,
		CategoryHealthyMushroom,
	}
}
