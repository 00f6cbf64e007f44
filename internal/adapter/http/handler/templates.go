package handler

import (
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/dairyledger/internal/domain"
)

const pageLayout = `{{define "head"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.}} | Dairy Ledger</title>
  <style>
    * { box-sizing: border-box; }
    body { margin: 0; padding: 24px; font-family: "Helvetica Neue", Arial, sans-serif; color: #111827; background: #f9fafb; }
    .page { max-width: 960px; margin: 0 auto; }
    .header { display: flex; justify-content: space-between; align-items: baseline; border-bottom: 2px solid #2563eb; padding-bottom: 12px; margin-bottom: 24px; }
    .muted { color: #6b7280; font-size: 13px; }
    .cards { display: flex; gap: 12px; flex-wrap: wrap; margin-bottom: 24px; }
    .card { flex: 1; min-width: 160px; background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 12px; }
    .card .label { color: #6b7280; text-transform: uppercase; letter-spacing: 0.04em; font-size: 11px; }
    .card .value { font-size: 20px; font-weight: 600; margin-top: 4px; }
    .section { margin-bottom: 28px; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; background: #fff; }
    th, td { padding: 8px 10px; border-bottom: 1px solid #e5e7eb; text-align: left; }
    th { text-transform: uppercase; font-size: 11px; letter-spacing: 0.04em; color: #6b7280; }
    td.num, th.num { text-align: right; }
    .negative { color: #059669; }
    .chart { display: flex; gap: 10px; align-items: flex-end; height: 160px; padding: 8px; background: #fff; border: 1px solid #e5e7eb; }
    .day { flex: 1; display: flex; flex-direction: column; align-items: center; height: 100%; }
    .bars { flex: 1; display: flex; gap: 3px; align-items: flex-end; width: 100%; justify-content: center; }
    .bar { width: 14px; border-radius: 3px 3px 0 0; }
    .bar.morning { background: #f59e0b; }
    .bar.evening { background: #6366f1; }
    details { background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; margin-bottom: 12px; padding: 8px 12px; }
    summary { cursor: pointer; font-weight: 600; }
    form.login { max-width: 320px; margin: 80px auto; background: #fff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 24px; }
    form.login input { width: 100%; padding: 8px; margin: 6px 0 14px; }
    form.login button { width: 100%; padding: 10px; background: #2563eb; color: #fff; border: 0; border-radius: 6px; }
    .error { color: #b91c1c; margin-bottom: 12px; }
  </style>
</head>
<body>
<div class="page">
{{end}}
{{define "foot"}}</div>
</body>
</html>
{{end}}`

const loginTemplate = `{{template "head" "Sign in"}}
<form class="login" method="post" action="/login">
  <h2>Sign in</h2>
  {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
  <label for="user_id">User ID</label>
  <input id="user_id" name="user_id" value="{{.UserID}}" autocomplete="username" required />
  <label for="password">Password</label>
  <input id="password" name="password" type="password" autocomplete="current-password" required />
  <button type="submit">Sign in</button>
</form>
{{template "foot"}}`

const dashboardTemplate = `{{template "head" "Dashboard"}}
<div class="header">
  <h1>Dashboard</h1>
  <div class="muted">{{.Today}} AD &middot; {{.TodayBS}} BS</div>
</div>

<div class="cards">
  <div class="card"><div class="label">Customers</div><div class="value">{{.CustomerCount}}</div></div>
  <div class="card"><div class="label">Milk collected</div><div class="value">{{liters .TotalLiters}} L</div></div>
  <div class="card"><div class="label">Billed</div><div class="value">{{money .Ledger.TotalBilled}}</div></div>
  <div class="card"><div class="label">Received</div><div class="value">{{money .Ledger.TotalPaid}}</div></div>
  <div class="card"><div class="label">Outstanding</div><div class="value">{{money .Ledger.Dues}}</div></div>
</div>

<div class="section">
  <h2>Last {{len .Chart.Days}} days</h2>
  <div class="chart">
    {{range .Chart.Days}}
    <div class="day" title="{{.Date}}: {{liters .Total.Liters}} L">
      <div class="bars">
        <div class="bar morning" style="height: {{pct $.Chart .Morning.Liters}}%"></div>
        <div class="bar evening" style="height: {{pct $.Chart .Evening.Liters}}%"></div>
      </div>
      <div class="muted">{{bs .Date}}</div>
    </div>
    {{end}}
  </div>
  <div class="muted">Morning in amber, evening in indigo.</div>
</div>

<div class="section">
  <h2>Balances</h2>
  <table>
    <thead><tr><th>Customer</th><th>Name</th><th class="num">Billed</th><th class="num">Paid</th><th class="num">Dues</th></tr></thead>
    <tbody>
    {{range .Balances}}
      <tr>
        <td><a href="/customers/{{.CustomerID}}/statement">{{.CustomerID}}</a></td>
        <td>{{.Name}}</td>
        <td class="num">{{money .Ledger.TotalBilled}}</td>
        <td class="num">{{money .Ledger.TotalPaid}}</td>
        <td class="num{{if .Ledger.Dues.IsNegative}} negative{{end}}">{{money .Ledger.Dues}}</td>
      </tr>
    {{else}}
      <tr><td colspan="5" class="muted">No customers yet.</td></tr>
    {{end}}
    </tbody>
  </table>
</div>

<div class="section">
  <h2>Collections</h2>
  <table>
    <thead><tr><th>Customer</th><th class="num">Entries</th><th class="num">Liters</th><th class="num">Amount</th><th class="num">Avg rate</th></tr></thead>
    <tbody>
    {{range .Collections}}
      <tr>
        <td>{{.CustomerID}} {{index $.Names .CustomerID}}</td>
        <td class="num">{{len .Entries}}</td>
        <td class="num">{{liters .TotalLiters}}</td>
        <td class="num">{{money .TotalAmount}}</td>
        <td class="num">{{money .AverageRate}}</td>
      </tr>
    {{else}}
      <tr><td colspan="5" class="muted">No milk recorded yet.</td></tr>
    {{end}}
    </tbody>
  </table>
</div>
{{template "foot"}}`

const statementTemplate = `{{template "head" .Customer.Name}}
<div class="header">
  <div>
    <h1>{{.Customer.Name}}</h1>
    <div class="muted">{{.Customer.ID}}{{if .Customer.Mobile}} &middot; {{.Customer.Mobile}}{{end}}{{if .Customer.Address}} &middot; {{.Customer.Address}}{{end}}</div>
  </div>
  <div class="muted">{{.Today}} AD &middot; {{.TodayBS}} BS</div>
</div>

<div class="cards">
  <div class="card"><div class="label">Current rate</div><div class="value">{{if .HasRate}}{{money .CurrentRate}} / L{{else}}not set{{end}}</div></div>
  <div class="card"><div class="label">Billed</div><div class="value">{{money .Ledger.TotalBilled}}</div></div>
  <div class="card"><div class="label">Paid</div><div class="value">{{money .Ledger.TotalPaid}}</div></div>
  <div class="card"><div class="label">Dues</div><div class="value{{if .Ledger.Dues.IsNegative}} negative{{end}}">{{money .Ledger.Dues}}</div></div>
</div>

{{range .Months}}
<details{{if .Current}} open{{end}}>
  <summary>{{.Key.Name}} &middot; billed {{money .Ledger.TotalBilled}} &middot; paid {{money .Ledger.TotalPaid}} &middot; dues {{money .Ledger.Dues}}</summary>
  <table>
    <thead><tr><th>Date (BS)</th><th>Shift</th><th class="num">Liters</th><th class="num">Rate</th><th class="num">Total</th></tr></thead>
    <tbody>
    {{range .Entries}}
      <tr>
        <td title="{{.Date}}">{{.DisplayDate}}</td>
        <td>{{.Shift}}</td>
        <td class="num">{{liters .Liters}}</td>
        <td class="num">{{money .Rate}}</td>
        <td class="num">{{money .Total}}</td>
      </tr>
    {{else}}
      <tr><td colspan="5" class="muted">No milk recorded this month.</td></tr>
    {{end}}
    </tbody>
  </table>
  {{if .Payments}}
  <table>
    <thead><tr><th>Payment date (BS)</th><th>Description</th><th class="num">Amount</th></tr></thead>
    <tbody>
    {{range .Payments}}
      <tr><td title="{{.Date}}">{{bs .Date}}</td><td>{{.Description}}</td><td class="num">{{money .Amount}}</td></tr>
    {{end}}
    </tbody>
  </table>
  {{end}}
</details>
{{end}}
{{template "foot"}}`

// pageTemplates holds the parsed server-rendered pages.
type pageTemplates struct {
	login     *template.Template
	dashboard *template.Template
	statement *template.Template
}

func newPageTemplates(conv domain.DateConverter) *pageTemplates {
	funcs := template.FuncMap{
		"money":  formatMoney,
		"liters": formatQuantity,
		"pct": func(c domain.DailyChart, v decimal.Decimal) string {
			return c.Percentage(v).StringFixed(0)
		},
		"bs": func(d domain.Date) string {
			return conv.ToBS(d).String()
		},
	}

	parse := func(name, body string) *template.Template {
		t := template.Must(template.New(name).Funcs(funcs).Parse(pageLayout))
		return template.Must(t.Parse(body))
	}

	return &pageTemplates{
		login:     parse("login", loginTemplate),
		dashboard: parse("dashboard", dashboardTemplate),
		statement: parse("statement", statementTemplate),
	}
}

func formatMoney(v decimal.Decimal) string {
	return "Rs. " + v.StringFixed(2)
}

func formatQuantity(v decimal.Decimal) string {
	s := v.StringFixed(2)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
