package ports

import "github.com/bnema/stockboard-cli/internal/domain"

// PostView is where the board renders posts and surfaces validation alerts.
type PostView interface {
	AppendPost(post domain.Post)
	Alert(message string)
	ResetForm()
}

// TrendView is the results area of the visualizer.
type TrendView interface {
	ShowLoading()
	ShowError(message string)
	ShowCPUCores(cores int)
	ShowChart(chart domain.Chart)
}
