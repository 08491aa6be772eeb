// internal/pkg/pdf/statement.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/boffobaby/inventory-backend/internal/config"
	"github.com/boffobaby/inventory-backend/internal/domain/distribution"
	"github.com/boffobaby/inventory-backend/internal/domain/payment"
	"github.com/boffobaby/inventory-backend/internal/domain/user"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// StatementData represents the data passed to the statement template
type StatementData struct {
	StatementNumber string
	StatementDate   string
	Reseller        *user.User
	Account         *payment.Account
	Distributions   []distribution.StockDistribution
	Payments        []payment.Payment
	Company         CompanyInfo
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// GenerateStatement renders a reseller account statement: the balance
// summary followed by stock received and payments made.
func (s *Service) GenerateStatement(reseller *user.User, account *payment.Account, distributions []distribution.StockDistribution, payments []payment.Payment) (*bytes.Buffer, error) {
	data := StatementData{
		StatementNumber: fmt.Sprintf("STM-%d-%s", reseller.ID, time.Now().Format("20060102")),
		StatementDate:   time.Now().Format("January 2, 2006"),
		Reseller:        reseller,
		Account:         account,
		Distributions:   distributions,
		Payments:        payments,
		Company: CompanyInfo{
			Name:    s.config.App.CompanyName,
			Address: s.config.App.CompanyAddress,
			Phone:   s.config.App.CompanyPhone,
			Email:   s.config.App.CompanyEmail,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data StatementData) (string, error) {
	tmpl := template.Must(template.New("statement").Parse(statementTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// Statement HTML template
const statementTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Statement {{.StatementNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .company-info {
            flex: 1;
        }
        .statement-info {
            text-align: right;
            flex: 1;
        }
        .statement-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 10px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin: 20px 0 10px;
            color: #374151;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 10px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .num-col {
            text-align: right;
            width: 100px;
        }
        .summary {
            float: right;
            width: 320px;
        }
        .summary table {
            width: 100%;
            border-collapse: collapse;
        }
        .summary td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .summary .label {
            text-align: right;
            font-weight: bold;
        }
        .summary .amount {
            text-align: right;
            width: 110px;
        }
        .balance-row {
            font-size: 18px;
            font-weight: bold;
            border-top: 2px solid #333 !important;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            <p>{{.Company.Address}}</p>
            <p>Phone: {{.Company.Phone}}</p>
            <p>Email: {{.Company.Email}}</p>
        </div>
        <div class="statement-info">
            <div class="statement-title">ACCOUNT STATEMENT</div>
            <p><strong>Statement #:</strong> {{.StatementNumber}}</p>
            <p><strong>Date:</strong> {{.StatementDate}}</p>
        </div>
    </div>

    <div class="section-title">Reseller</div>
    <p>
        <strong>{{.Reseller.Name}}</strong><br>
        {{.Reseller.Email}}<br>
        {{if .Reseller.PhoneNumber}}Phone: {{.Reseller.PhoneNumber}}{{end}}
    </p>

    <div class="section-title">Stock Received</div>
    <table class="items-table">
        <thead>
            <tr>
                <th>Date</th>
                <th>Product</th>
                <th class="num-col">Qty</th>
                <th class="num-col">Unit Price</th>
                <th class="num-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Distributions}}
            <tr>
                <td>{{.DateDistributed.Format "Jan 2, 2006"}}</td>
                <td>{{if .Product}}{{.Product.Name}}{{else}}#{{.ProductID}}{{end}}</td>
                <td class="num-col">{{.Quantity}}</td>
                <td class="num-col">{{printf "%.2f" .UnitPrice}}</td>
                <td class="num-col">{{printf "%.2f" .TotalPrice}}</td>
            </tr>
            {{else}}
            <tr><td colspan="5">No stock received</td></tr>
            {{end}}
        </tbody>
    </table>

    <div class="section-title">Payments</div>
    <table class="items-table">
        <thead>
            <tr>
                <th>Date</th>
                <th>Method</th>
                <th>Reference</th>
                <th class="num-col">Amount</th>
            </tr>
        </thead>
        <tbody>
            {{range .Payments}}
            <tr>
                <td>{{.DatePaid.Format "Jan 2, 2006"}}</td>
                <td>{{.Method}}</td>
                <td>{{.Reference}}</td>
                <td class="num-col">{{printf "%.2f" .Amount}}</td>
            </tr>
            {{else}}
            <tr><td colspan="4">No payments recorded</td></tr>
            {{end}}
        </tbody>
    </table>

    <div class="summary">
        <table>
            <tr>
                <td class="label">Stock Received (units):</td>
                <td class="amount">{{.Account.TotalStockReceived}}</td>
            </tr>
            <tr>
                <td class="label">Value Received:</td>
                <td class="amount">{{printf "%.2f" .Account.TotalValueReceived}}</td>
            </tr>
            <tr>
                <td class="label">Total Paid:</td>
                <td class="amount">{{printf "%.2f" .Account.TotalPaid}}</td>
            </tr>
            <tr class="balance-row">
                <td class="label">Balance Due:</td>
                <td class="amount">{{printf "%.2f" .Account.Balance}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Questions about this statement? Contact us at {{.Company.Email}} or {{.Company.Phone}}</p>
    </div>
</body>
</html>
`
