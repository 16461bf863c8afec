package server

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/resume-goat/resume-goat/internal/dashboard"
	"github.com/resume-goat/resume-goat/internal/stats"
	"github.com/resume-goat/resume-goat/internal/store"
)

// Dashboard template data structures
type layoutData struct {
	Title   string
	CSS     template.CSS
	Content template.HTML
}

type listData struct {
	Experiments []experimentListItem
}

type experimentListItem struct {
	Name      string
	State     string
	TrialsA   int
	TrialsB   int
	ResponseA string
	ResponseB string
	Winner    string
	CreatedAt string
}

type detailData struct {
	Name        string
	State       string
	Description string
	CreatedAt   string
	Groups      []detailGroup
	Verdict     string
	PValue      string
}

type detailGroup struct {
	Group         stats.Group
	Variant       string
	Total         int
	ResponseRate  string
	Interval      string
	InterviewRate string
	AvgResponse   string
	Leading       bool
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	// Handle logout
	if r.URL.Query().Get("logout") == "1" {
		http.SetCookie(w, &http.Cookie{
			Name:   tokenCookieName,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	ctx := r.Context()

	experiments, err := s.store.ListExperiments(ctx)
	if err != nil {
		s.logger.Error("failed to list experiments", "error", err)
		http.Error(w, "Failed to load experiments", http.StatusInternalServerError)
		return
	}

	items := make([]experimentListItem, 0, len(experiments))
	for _, e := range experiments {
		_, report, err := store.AnalyzeExperiment(ctx, s.store, e.Name)
		if err != nil {
			s.logger.Error("failed to analyze experiment", "experiment", e.Name, "error", err)
			http.Error(w, "Failed to load experiments", http.StatusInternalServerError)
			return
		}

		items = append(items, experimentListItem{
			Name:      e.Name,
			State:     string(e.State),
			TrialsA:   report.A.Metrics.Total,
			TrialsB:   report.B.Metrics.Total,
			ResponseA: dashboard.FormatRate(report.A.Metrics.ResponseRate),
			ResponseB: dashboard.FormatRate(report.B.Metrics.ResponseRate),
			Winner:    winnerLabel(e, report),
			CreatedAt: e.CreatedAt.Format("Jan 2, 2006"),
		})
	}

	s.renderDashboard(w, "Dashboard", "list.html", listData{Experiments: items})
}

// winnerLabel prefers a declared winner over the computed suggestion.
func winnerLabel(e *store.Experiment, r stats.Report) string {
	if e.Winner != nil {
		return string(*e.Winner)
	}
	switch r.Winner {
	case stats.WinnerA, stats.WinnerB:
		return string(r.Winner) + " (suggested)"
	case stats.WinnerTie:
		return "tie"
	}
	return "-"
}

func (s *Server) handleDashboardExperiment(w http.ResponseWriter, r *http.Request) {
	// Extract experiment name from path: /dashboard/experiment/<name>
	name := r.URL.Path[len("/dashboard/experiment/"):]
	if name == "" {
		http.NotFound(w, r)
		return
	}

	e, report, err := store.AnalyzeExperiment(r.Context(), s.store, name)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("failed to analyze experiment", "experiment", name, "error", err)
		http.Error(w, "Failed to load experiment", http.StatusInternalServerError)
		return
	}
	observeAnalysis(report)

	leading, hasLeader := report.Winner.Group()
	if e.Winner != nil {
		leading, hasLeader = *e.Winner, true
	}

	groups := make([]detailGroup, 0, 2)
	for _, g := range []stats.Group{stats.GroupA, stats.GroupB} {
		gr := report.Group(g)
		interval := "n/a"
		if gr.Metrics.Total > 0 {
			interval = fmt.Sprintf("%s - %s", dashboard.FormatRate(gr.ResponseCI.Lower), dashboard.FormatRate(gr.ResponseCI.Upper))
		}
		groups = append(groups, detailGroup{
			Group:         g,
			Variant:       e.Variant(g),
			Total:         gr.Metrics.Total,
			ResponseRate:  dashboard.FormatRate(gr.Metrics.ResponseRate),
			Interval:      interval,
			InterviewRate: dashboard.FormatRate(gr.Metrics.InterviewRate),
			AvgResponse:   dashboard.FormatHours(gr.Metrics.AvgResponseTimeHours),
			Leading:       hasLeader && leading == g,
		})
	}

	data := detailData{
		Name:        e.Name,
		State:       string(e.State),
		Description: e.Description,
		CreatedAt:   e.CreatedAt.Format("Jan 2, 2006"),
		Groups:      groups,
		Verdict:     dashboard.Verdict(report),
		PValue:      dashboard.FormatPValue(report.Significance.PValue),
	}

	s.renderDashboard(w, e.Name, "detail.html", data)
}

func (s *Server) renderDashboard(w http.ResponseWriter, title, contentTemplate string, data any) {
	cssBytes, err := dashboard.Assets.ReadFile("assets/style.css")
	if err != nil {
		http.Error(w, "Failed to load styles", http.StatusInternalServerError)
		return
	}

	contentTmpl, err := template.ParseFS(dashboard.Templates, "templates/"+contentTemplate)
	if err != nil {
		s.logger.Error("failed to parse template", "template", contentTemplate, "error", err)
		http.Error(w, "Failed to parse template", http.StatusInternalServerError)
		return
	}

	var contentBuf bytes.Buffer
	if err := contentTmpl.Execute(&contentBuf, data); err != nil {
		s.logger.Error("failed to render template", "template", contentTemplate, "error", err)
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}

	layoutTmpl, err := template.ParseFS(dashboard.Templates, "templates/layout.html")
	if err != nil {
		http.Error(w, "Failed to parse layout", http.StatusInternalServerError)
		return
	}

	page := layoutData{
		Title:   title,
		CSS:     template.CSS(cssBytes),
		Content: template.HTML(contentBuf.String()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layoutTmpl.Execute(w, page); err != nil {
		s.logger.Error("failed to render layout", "error", err)
	}
}
