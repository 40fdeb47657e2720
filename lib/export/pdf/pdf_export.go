package pdfexport

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"hr-scheduler-backend/models"
	dbmodels "hr-scheduler-backend/models/db"
)

type Provider interface {
	ExportEscalatedSessions(list []dbmodels.NegotiationSession) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) ExportEscalatedSessions(list []dbmodels.NegotiationSession) (pdfFile *bytes.Buffer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("ExportEscalatedSessions panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	_, lineHt := pdf.GetFontSize()
	html := pdf.HTMLBasicNew()
	html.Write(lineHt, "Эскалации согласования интервью")

	pdf.SetFont("Arial", "", 12)
	_, lineHt = pdf.GetFontSize()
	for _, item := range list {
		pdf.Ln(lineHt * 2)
		html = pdf.HTMLBasicNew()
		html.Write(lineHt, escalationHTML(item))
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// блок сессии для HTMLBasicNew: кандидат, вакансия, раунд и переписка
func escalationHTML(item dbmodels.NegotiationSession) string {
	sb := strings.Builder{}
	if item.Interview != nil && item.Interview.Applicant != nil {
		applicant := item.Interview.Applicant
		sb.WriteString(fmt.Sprintf("<b>%v</b><br>", template.HTMLEscapeString(applicant.GetFIO())))
		sb.WriteString(fmt.Sprintf("%v, %v<br>",
			template.HTMLEscapeString(applicant.Phone), template.HTMLEscapeString(applicant.Email)))
	}
	if item.Interview != nil && item.Interview.Vacancy != nil {
		sb.WriteString(fmt.Sprintf("Вакансия: %v<br>", template.HTMLEscapeString(item.Interview.Vacancy.VacancyName)))
	}
	sb.WriteString(fmt.Sprintf("Раунд: %v, эскалация: %v<br>", item.Round, item.UpdatedAt.Format("02.01.2006 15:04")))
	for _, entry := range item.History {
		author := "Кандидат"
		if entry.Role == models.ChatRoleBot {
			author = "Бот"
		}
		sb.WriteString(fmt.Sprintf("%v: %v<br>", author, template.HTMLEscapeString(entry.Message)))
	}
	return sb.String()
}
