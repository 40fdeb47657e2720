package xlsexport

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
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

var escalationHeaders = []string{"Кандидат", "Контакты", "Вакансия", "Раунд", "Дата эскалации", "Переписка"}

func (i impl) ExportEscalatedSessions(list []dbmodels.NegotiationSession) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, escalationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeEscalationData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Эскалации")
	return f.WriteToBuffer()
}

func writeEscalationData(f *excelize.File, sheet string, list []dbmodels.NegotiationSession, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(escalationHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Кандидат"
		col := 1
		if item.Interview != nil && item.Interview.Applicant != nil {
			if err := writeColumn(f, sheet, col, row, item.Interview.Applicant.GetFIO()); err != nil {
				return row, err
			}
		}

		// "Контакты"
		col++
		if item.Interview != nil && item.Interview.Applicant != nil {
			applicant := item.Interview.Applicant
			if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%v\r%v", applicant.Phone, applicant.Email)); err != nil {
				return row, err
			}
		}

		// "Вакансия"
		col++
		if item.Interview != nil && item.Interview.Vacancy != nil {
			if err := writeColumn(f, sheet, col, row, item.Interview.Vacancy.VacancyName); err != nil {
				return row, err
			}
		}

		// "Раунд"
		col++
		if err := writeColumn(f, sheet, col, row, item.Round); err != nil {
			return row, err
		}

		// "Дата эскалации"
		col++
		if err := writeColumn(f, sheet, col, row, item.UpdatedAt.Format("02.01.2006 15:04")); err != nil {
			return row, err
		}

		// "Переписка"
		col++
		if err := writeColumn(f, sheet, col, row, renderTranscript(item.History)); err != nil {
			return row, err
		}
	}
	return row, nil
}

func renderTranscript(history dbmodels.NegotiationHistory) string {
	sb := strings.Builder{}
	for idx, entry := range history {
		if idx > 0 {
			sb.WriteString("\r")
		}
		author := "Кандидат"
		if entry.Role == models.ChatRoleBot {
			author = "Бот"
		}
		sb.WriteString(fmt.Sprintf("%v: %v", author, entry.Message))
	}
	return sb.String()
}
