package reporting

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vfg2006/customer-segmentation-api/internal/domain"
)

// Cabeçalhos dos dois CSVs de exportação. A coluna Country só entra quando a
// origem a fornecia.
var (
	segmentsHeader = []string{
		"CustomerID", "Recency", "Frequency", "Monetary",
		"R_Score", "F_Score", "M_Score", "RFM_Score",
		"Segment", "Suggested Action",
	}
	summaryHeader = []string{"Segment", "Recency", "Frequency", "Monetary", "Count"}
)

// RenderSegmentsCSV serializa a tabela RFM completa. RFM_Score é escrito como
// texto, sem reformatação: o que foi concatenado na pontuação é o que sai.
func (s *Service) RenderSegmentsCSV(report *domain.RFMReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := segmentsHeader
	if report.HasCountry {
		header = append(append([]string{}, segmentsHeader...), "Country")
	}
	if err := writer.Write(header); err != nil {
		return nil, errors.Wrap(err, "writing CSV header")
	}

	for _, c := range report.Customers {
		record := []string{
			strconv.FormatInt(c.CustomerID, 10),
			strconv.Itoa(c.Recency),
			strconv.Itoa(c.Frequency),
			strconv.FormatFloat(c.Monetary, 'f', 2, 64),
			strconv.Itoa(c.RScore),
			strconv.Itoa(c.FScore),
			strconv.Itoa(c.MScore),
			c.RFMScore,
			string(c.Segment),
			c.SuggestedAction,
		}
		if report.HasCountry {
			record = append(record, c.Country)
		}

		if err := writer.Write(record); err != nil {
			return nil, errors.Wrap(err, "writing CSV row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.Wrap(err, "flushing CSV")
	}

	return buf.Bytes(), nil
}

// RenderSummaryCSV serializa o resumo por segmento com as médias em duas casas
func (s *Service) RenderSummaryCSV(summary []domain.SegmentSummary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(summaryHeader); err != nil {
		return nil, errors.Wrap(err, "writing CSV header")
	}

	for _, row := range summary {
		record := []string{
			string(row.Segment),
			strconv.FormatFloat(row.Recency, 'f', 2, 64),
			strconv.FormatFloat(row.Frequency, 'f', 2, 64),
			strconv.FormatFloat(row.Monetary, 'f', 2, 64),
			strconv.Itoa(row.Count),
		}

		if err := writer.Write(record); err != nil {
			return nil, errors.Wrap(err, "writing CSV row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.Wrap(err, "flushing CSV")
	}

	return buf.Bytes(), nil
}
