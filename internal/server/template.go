package server

import (
	"fmt"
	"html/template"
)

var templateFuncs = template.FuncMap{
	"price": func(v float64) string {
		if v == 0 {
			return "-"
		}
		if v < 0.01 {
			return fmt.Sprintf("%.8f", v)
		}
		return fmt.Sprintf("%.2f", v)
	},
	"pct": func(v *float64) string {
		if v == nil {
			return "n/a"
		}
		return fmt.Sprintf("%+.2f%%", *v)
	},
}

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<title>Crypto Trend Board</title>
<style>
body { font-family: sans-serif; margin: 2em; background: #fafafa; }
table { border-collapse: collapse; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 6px 12px; text-align: right; }
th { background: #eee; }
td.asset { text-align: left; font-weight: bold; }
.up { color: #0a7d33; }
.down { color: #b00020; }
.err { color: #b00020; font-style: italic; text-align: left; }
.derived { color: #666; font-size: 0.8em; }
.ts { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Crypto Trend Board</h1>
<p class="ts">Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}} &middot; <a href="/refresh">refresh now</a></p>

{{define "resultRow"}}
{{if .}}{{if .Err}}
<td colspan="6" class="err">{{.Symbol}}: {{.Err}}{{if .Exchange}} ({{.Exchange}}){{end}}</td>
{{else}}
<td>{{.Symbol}}{{if .IsCalculated}} <span class="derived">derived</span>{{end}}</td>
<td>{{price .CurrentPrice}}</td>
<td>{{price .EMA8}} / {{price .EMA20}}</td>
<td class="{{if .IsUptrend}}up{{else}}down{{end}}">{{.TrendText}}</td>
<td>{{pct .Change7D}}</td>
<td>{{.Exchange}}</td>
{{end}}{{else}}<td colspan="6">-</td>{{end}}
{{end}}

{{define "section"}}
<table>
<tr>
  <th>Asset</th><th>Chain</th>
  <th>Pair</th><th>Price</th><th>EMA 8/20</th><th>Trend</th><th>7d</th><th>Venue</th>
  <th>Pair</th><th>Price</th><th>EMA 8/20</th><th>Trend</th><th>7d</th><th>Venue</th>
</tr>
{{range .}}
<tr>
  <td class="asset">{{.Asset}}</td>
  <td>{{if .Chain}}{{.Chain}}{{else}}-{{end}}</td>
  {{template "resultRow" .USD}}
  {{template "resultRow" .BTC}}
</tr>
{{end}}
</table>
{{end}}

<h2>Portfolio</h2>
{{template "section" .Portfolio}}

<h2>Watchlist</h2>
{{template "section" .Watchlist}}
</body>
</html>
`
