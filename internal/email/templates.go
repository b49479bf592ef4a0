package email

import (
	"bytes"
	"html/template"
)

const subjectHotLeadAlertFmt = "🔥 Hot lead: %s"

var hotLeadAlertTemplate = template.Must(template.New("hot_lead_alert").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1a1a1a; margin: 0; padding: 24px;">
  <h2 style="margin: 0 0 16px;">Hot lead detected</h2>
  <table cellpadding="4" cellspacing="0" style="font-size: 14px;">
    {{if .Name}}<tr><td><strong>Name</strong></td><td>{{.Name}}</td></tr>{{end}}
    {{if .Email}}<tr><td><strong>Email</strong></td><td>{{.Email}}</td></tr>{{end}}
    {{if .Phone}}<tr><td><strong>Phone</strong></td><td>{{.Phone}}</td></tr>{{end}}
    <tr><td><strong>Score</strong></td><td>{{.Score}}</td></tr>
    <tr><td><strong>Detected by</strong></td><td>{{.Source}}</td></tr>
  </table>
  {{if .Reasoning}}<p style="font-size: 14px; margin-top: 16px;">{{.Reasoning}}</p>{{end}}
  <p style="font-size: 12px; color: #777; margin-top: 24px;">Follow up quickly, hot leads cool down fast.</p>
</body>
</html>`))

func renderHotLeadAlert(alert HotLeadAlert) (string, error) {
	var buf bytes.Buffer
	if err := hotLeadAlertTemplate.Execute(&buf, alert); err != nil {
		return "", err
	}
	return buf.String(), nil
}
