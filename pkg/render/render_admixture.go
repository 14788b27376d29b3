// Render HTML for the admixture input form and result page

package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/yumyai/admixmap/logger"
	"github.com/yumyai/admixmap/pkg/model"
	"go.uber.org/zap"
)

var (
	indexTemplate    *template.Template
	analysisTemplate *template.Template
)

func init() {
	headerTmpl := `
	{{define "header"}}
		<header class="app-header">
			<h1 class="app-name">Admixture Map</h1>
			<p class="app-description">
				Paste the output of an admixture calculator to see how your ancestry components spread over the world.
			</p>
		</header>
	{{end}}`

	formTmpl := `
	{{define "form"}}
		<form method="POST" action="/admixture/analysis">
			<label>Calculator:
			<select name="calculator">
				<option value="">Detect automatically</option>
				{{range .}}<option value="{{.ID}}">{{.DisplayName}} ({{.ExpectedComponentCount}} components)</option>{{end}}
			</select>
			</label>
			<textarea name="data" rows="16" cols="60" placeholder="European: 50.0%&#10;African: 30.0%&#10;East_Asian: 20.0%"></textarea>
			<button type="submit">Analyze</button>
		</form>
	{{end}}`

	indexMainTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
		<link href="/static/style.css" rel="stylesheet"></link>
		<title>Admixture Map</title>
	</head>
	<body>
		{{template "header"}}
		{{template "form" .Models}}
	</body>
	</html>`

	analysisMainTmpl := `
	<!DOCTYPE html>
	<html>
	<head>
		<link href="/static/style.css" rel="stylesheet"></link>
		<script src="/static/admixture-map.js" defer></script>
		<title>Admixture analysis{{with .Result}}: {{.ModelName}}{{end}}</title>
	</head>
	<body>
		{{template "header"}}
		{{if .Error}}
			<div class="alert alert-error">{{.Error}}</div>
			<p>Available calculators: {{range $i, $id := .Calculators}}{{if $i}}, {{end}}{{$id}}{{end}}</p>
			<a href="/">Back</a>
		{{else}}
			{{template "summary" .Result}}
			{{template "components" .Result}}
			{{template "regions" .Result}}
			<div id="map"></div>
			<script>
				window.admixtureResult = {{.Result.GeoJSON}};
			</script>
		{{end}}
	</body>
	</html>`

	summaryTmpl := `
	{{define "summary"}}
		<div class="summary">
			<p>Model: {{.ModelName}}</p>
			<p>Components: {{.Statistics.ComponentCount}} (total {{percent .Statistics.TotalProportion}}, on map {{percent .Statistics.MappedProportion}})</p>
			<p>Dominant component: {{.Statistics.DominantComponent.Name}} ({{percent .Statistics.DominantComponent.Proportion}})</p>
			{{with .Statistics.DominantRegion}}<p>Dominant region: {{.}}</p>{{end}}
			<p>Diversity index: {{printf "%.3f" .Statistics.DiversityIndex}}</p>
			{{with .Statistics.UnmappedComponents}}<p>Not shown on the map: {{range $i, $n := .}}{{if $i}}, {{end}}{{$n}}{{end}}</p>{{end}}
		</div>
	{{end}}`

	componentsTmpl := `
	{{define "components"}}
		<table border="1" class="components">
		<tr>
			<th></th>
			<th>Component</th>
			<th>Proportion</th>
		</tr>
		{{range $i, $c := .Components}}
			<tr>
				<td><span class="swatch" style="background-color: {{css (index $.Legend $i).Color}}"></span></td>
				<td>{{$c.Name}}</td>
				<td>{{percent $c.Proportion}}</td>
			</tr>
		{{end}}
		</table>
	{{end}}`

	regionsTmpl := `
	{{define "regions"}}
		<table border="1" class="regions">
		<tr>
			<th>Region</th>
			<th>Proportion</th>
		</tr>
		{{range .GeoJSON.Features}}{{if gtz .TotalProportion}}
			<tr style="background-color: {{css .Color}}">
				<td>{{.Region}}</td>
				<td>{{percent .TotalProportion}}</td>
			</tr>
		{{end}}{{end}}
		</table>
	{{end}}`

	funcMap := template.FuncMap{
		"percent": func(p float64) string { return fmt.Sprintf("%.1f%%", p*100) },
		"css":     func(s string) template.CSS { return template.CSS(s) },
		"gtz":     func(f float64) bool { return f > 0 },
	}

	indexTemplate = template.New("index").Funcs(funcMap)
	indexTemplate = template.Must(indexTemplate.Parse(indexMainTmpl))
	indexTemplate = template.Must(indexTemplate.Parse(headerTmpl))
	indexTemplate = template.Must(indexTemplate.Parse(formTmpl))

	analysisTemplate = template.New("analysis").Funcs(funcMap)
	analysisTemplate = template.Must(analysisTemplate.Parse(analysisMainTmpl))
	analysisTemplate = template.Must(analysisTemplate.Parse(headerTmpl))
	analysisTemplate = template.Must(analysisTemplate.Parse(summaryTmpl))
	analysisTemplate = template.Must(analysisTemplate.Parse(componentsTmpl))
	analysisTemplate = template.Must(analysisTemplate.Parse(regionsTmpl))
}

type analysisData struct {
	Result      *model.ProcessingResult
	Error       string
	Calculators []string
}

func RenderIndexPage(w io.Writer, models []*model.ComponentModel) error {
	return indexTemplate.Execute(w, struct {
		Models []*model.ComponentModel
	}{Models: models})
}

func RenderAnalysisPage(w io.Writer, result *model.ProcessingResult) error {

	logger.Debug("Rendering analysis page", zap.String("model", result.ModelID))

	return analysisTemplate.Execute(w, analysisData{Result: result})
}

// RenderAnalysisError shows a user facing pipeline error instead of a result.
func RenderAnalysisError(w io.Writer, message string, calculators []string) error {
	return analysisTemplate.Execute(w, analysisData{Error: message, Calculators: calculators})
}
