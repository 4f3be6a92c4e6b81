package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CategoryIcon is the symbolic icon attached to a category.
type CategoryIcon string

const (
	IconFolder         CategoryIcon = "folder"
	IconBriefcase      CategoryIcon = "briefcase"
	IconBook           CategoryIcon = "book"
	IconGraduationCap  CategoryIcon = "graduationcap"
	IconHouse          CategoryIcon = "house"
	IconCar            CategoryIcon = "car"
	IconGameController CategoryIcon = "gamecontroller"
	IconHeart          CategoryIcon = "heart"
	IconStar           CategoryIcon = "star"
	IconLeaf           CategoryIcon = "leaf"
	IconFlame          CategoryIcon = "flame"
	IconDrop           CategoryIcon = "drop"
	IconBolt           CategoryIcon = "bolt"
	IconCloud          CategoryIcon = "cloud"
)

var categoryIcons = map[CategoryIcon]bool{
	IconFolder: true, IconBriefcase: true, IconBook: true,
	IconGraduationCap: true, IconHouse: true, IconCar: true,
	IconGameController: true, IconHeart: true, IconStar: true,
	IconLeaf: true, IconFlame: true, IconDrop: true,
	IconBolt: true, IconCloud: true,
}

// ParseCategoryIcon decodes a wire icon string.
func ParseCategoryIcon(s string) (CategoryIcon, error) {
	if categoryIcons[CategoryIcon(s)] {
		return CategoryIcon(s), nil
	}
	return "", fmt.Errorf("unknown category icon: %q", s)
}

// CategoryColor is the display color attached to a category.
type CategoryColor string

const (
	ColorBlue   CategoryColor = "blue"
	ColorGreen  CategoryColor = "green"
	ColorOrange CategoryColor = "orange"
	ColorRed    CategoryColor = "red"
	ColorPurple CategoryColor = "purple"
	ColorPink   CategoryColor = "pink"
	ColorYellow CategoryColor = "yellow"
	ColorCyan   CategoryColor = "cyan"
	ColorTeal   CategoryColor = "teal"
	ColorIndigo CategoryColor = "indigo"
	ColorBrown  CategoryColor = "brown"
)

var categoryColors = map[CategoryColor]bool{
	ColorBlue: true, ColorGreen: true, ColorOrange: true, ColorRed: true,
	ColorPurple: true, ColorPink: true, ColorYellow: true, ColorCyan: true,
	ColorTeal: true, ColorIndigo: true, ColorBrown: true,
}

// ParseCategoryColor decodes a wire color string.
func ParseCategoryColor(s string) (CategoryColor, error) {
	if categoryColors[CategoryColor(s)] {
		return CategoryColor(s), nil
	}
	return "", fmt.Errorf("unknown category color: %q", s)
}

// Category groups tasks under a shared label. Categories are referenced by
// tasks through CategoryID; deleting one never deletes its tasks.
type Category struct {
	ID        string
	Name      string
	Icon      CategoryIcon
	Color     CategoryColor
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a category with default icon and color.
func NewCategory(name string) Category {
	now := time.Now()
	return Category{
		ID:        uuid.NewString(),
		Name:      name,
		Icon:      IconFolder,
		Color:     ColorBlue,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
