// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chartstyle

// FontSpec is a font size/weight pair. JSON keys follow Chart.js naming so
// the value can be shipped to a browser unchanged.
type FontSpec struct {
	Size   int    `json:"size"`
	Weight string `json:"weight,omitempty"`
}

// LegendLabels configures legend entry layout.
type LegendLabels struct {
	Padding       int      `json:"padding"`
	UsePointStyle bool     `json:"usePointStyle"`
	Font          FontSpec `json:"font"`
}

// LegendOptions configures the chart legend.
type LegendOptions struct {
	Display  bool         `json:"display"`
	Position string       `json:"position"`
	Labels   LegendLabels `json:"labels"`
}

// TooltipOptions configures hover tooltips.
type TooltipOptions struct {
	BackgroundColor string   `json:"backgroundColor"`
	Padding         int      `json:"padding"`
	CornerRadius    int      `json:"cornerRadius"`
	TitleFont       FontSpec `json:"titleFont"`
	BodyFont        FontSpec `json:"bodyFont"`

	// LabelDecimals is the precision of the value part of tooltip labels.
	LabelDecimals int `json:"-"`
}

// PluginOptions groups the legend and tooltip settings.
type PluginOptions struct {
	Legend  LegendOptions  `json:"legend"`
	Tooltip TooltipOptions `json:"tooltip"`
}

// AnimationOptions configures chart animation.
type AnimationOptions struct {
	Duration int    `json:"duration"`
	Easing   string `json:"easing"`
}

// ResponsiveOptions is the shared configuration used when constructing charts.
type ResponsiveOptions struct {
	Responsive          bool             `json:"responsive"`
	MaintainAspectRatio bool             `json:"maintainAspectRatio"`
	Plugins             PluginOptions    `json:"plugins"`
	Animation           AnimationOptions `json:"animation"`
}

// DefaultResponsiveOptions returns the standard chart options. Each call
// returns a fresh value.
func DefaultResponsiveOptions() ResponsiveOptions {
	return ResponsiveOptions{
		Responsive:          true,
		MaintainAspectRatio: true,
		Plugins: PluginOptions{
			Legend: LegendOptions{
				Display:  true,
				Position: "bottom",
				Labels: LegendLabels{
					Padding:       15,
					UsePointStyle: true,
					Font:          FontSpec{Size: 12, Weight: "500"},
				},
			},
			Tooltip: TooltipOptions{
				BackgroundColor: TooltipBackground,
				Padding:         12,
				CornerRadius:    8,
				TitleFont:       FontSpec{Size: 14, Weight: "bold"},
				BodyFont:        FontSpec{Size: 13},
				LabelDecimals:   4,
			},
		},
		Animation: AnimationOptions{
			Duration: 1000,
			Easing:   "easeInOutQuart",
		},
	}
}

// TooltipLabel builds the tooltip text for one data point: the dataset label,
// then ": " if the label is non-empty, then the y value when present.
func (o ResponsiveOptions) TooltipLabel(datasetLabel string, y *float64) string {
	label := datasetLabel
	if label != "" {
		label += ": "
	}
	if y != nil {
		label += FormatNumberPrec(*y, o.Plugins.Tooltip.LabelDecimals)
	}
	return label
}
