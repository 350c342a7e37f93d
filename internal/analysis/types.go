package analysis

// Report is the structured summary returned by the analytics engine. The
// client decodes it without validating its internals beyond JSON shape;
// the engine owns the semantics of each section.
type Report struct {
	BIOverview   BIOverview   `json:"biOverview"`
	Descriptive  Descriptive  `json:"descriptive"`
	Diagnostic   Diagnostic   `json:"diagnostic"`
	Predictive   Predictive   `json:"predictive"`
	Prescriptive Prescriptive `json:"prescriptive"`
}

// BIOverview feeds the dashboard's composition, trend and distribution
// charts.
type BIOverview struct {
	Composition  []LabelValue    `json:"composition"`
	Trend        []NameValue     `json:"trend"`
	Distribution []CategoryValue `json:"distribution"`
}

// Descriptive carries KPI cards, the descriptive narrative and chart data.
type Descriptive struct {
	KPIs      []KPI           `json:"kpis"`
	Narrative string          `json:"narrative"`
	ChartData []WordFrequency `json:"chartData"`
}

// Diagnostic carries the diagnostic narrative and correlation findings.
type Diagnostic struct {
	Narrative    string        `json:"narrative"`
	Correlations []Correlation `json:"correlations"`
}

// Predictive carries the forecast produced by the engine's trained model.
type Predictive struct {
	Narrative        string          `json:"narrative"`
	Forecast         []ForecastPoint `json:"forecast"`
	Confidence       float64         `json:"confidence"`
	ModelExplanation string          `json:"modelExplanation"`
}

// Prescriptive carries strategic recommendations.
type Prescriptive struct {
	Narrative       string           `json:"narrative"`
	Recommendations []Recommendation `json:"recommendations"`
	Disclaimer      string           `json:"disclaimer"`
}

// KPI is a single dashboard metric card.
type KPI struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Change string `json:"change"`
	Trend  string `json:"trend"`
}

// Correlation describes one factor relationship found by the engine.
type Correlation struct {
	Factor       string  `json:"factor"`
	Relationship string  `json:"relationship"`
	Strength     float64 `json:"strength"`
}

// ForecastPoint is one step of the predictive forecast series.
type ForecastPoint struct {
	Period    string  `json:"period"`
	Predicted float64 `json:"predicted"`
}

// Recommendation is one prescriptive action item.
type Recommendation struct {
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Priority string `json:"priority"`
}

// LabelValue, NameValue and CategoryValue are the engine's three chart
// point encodings.
type LabelValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type NameValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type CategoryValue struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// WordFrequency is one term count in the descriptive chart data.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TextSentiment is the engine's response to a single-text sentiment call.
type TextSentiment struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}
