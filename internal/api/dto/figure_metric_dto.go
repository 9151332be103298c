package dto

type FigureMetricPointDTO struct {
	MetricDate    string `json:"metric_date"`
	TotalVotes    int    `json:"total_votes"`
	TotalComments int    `json:"total_comments"`
}

type FigureMetricTrendDTO struct {
	FigureID uint64                  `json:"figure_id"`
	Points   []*FigureMetricPointDTO `json:"points"`
}
