package payslip

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertItems(t *testing.T, want []LineItem, got Items) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Label, got[i].Label)
		assert.True(t, want[i].Amount.Equal(got[i].Amount), "%s: want %s got %s", want[i].Label, want[i].Amount, got[i].Amount)
	}
}

func sampleRecord() Record {
	return Record{
		Employee: RecordEmployee{FullName: "Ali bin Abu", IC: "900101-14-5678", Position: "Engineer"},
		Period:   RecordPeriod{Month: "March", Year: 2025},
		Company:  &RecordCompany{Name: "Syarikat Maju Sdn Bhd", RegNumber: "123456-A"},
		Income: &IncomeFields{
			BasicSalary:    3000,
			Overtime:       0,
			FixedAllowance: "RM 200.00",
			Additional: []Item{
				{Label: "Bonus", Amount: "500"},
				{Label: "Travel", Amount: 0},
			},
		},
		Deductions: &DeductionFields{
			EPFEmployee:   330,
			SOCSOEmployee: "19.75",
			EISEmployee:   7.9,
			PCB:           150,
			Additional: []Item{
				{Label: "PCB/MTD", Amount: 150},
			},
		},
		Contributions: &ContributionFields{EPFEmployer: 390, SOCSOEmployer: 69.05, EISEmployer: 7.9},
		YTD: &YTDFields{
			Employee: &YTDEmployeeFields{EPF: 990, SOCSO: 59.25, EIS: 23.7, PCB: 450},
			Employer: &YTDEmployerFields{EPF: 1170, SOCSO: 207.15, EIS: 23.7},
		},
	}
}

func TestToNum(t *testing.T) {
	assert.True(t, ToNum("RM 1,500.50").Equal(dec("1500.5")))
	assert.True(t, ToNum(nil).IsZero())
	assert.True(t, ToNum("n/a").IsZero())
	assert.True(t, ToNum(12.5).Equal(dec("12.5")))
	assert.True(t, ToNum("1.2.3").IsZero())
	assert.True(t, ToNum("12-5").IsZero())
	assert.True(t, ToNum("RM 1,234.50-").IsZero())
}

func TestMapMalformedAmountsCountAsZero(t *testing.T) {
	rec := Record{Income: &IncomeFields{
		BasicSalary: "3,000.00.00",
		Additional:  []Item{{Label: "Claim", Amount: "100-200"}},
	}}
	p := Map(rec)

	assert.True(t, p.Gross.IsZero(), "gross %s", p.Gross)
	assert.True(t, p.NetPay.IsZero(), "net %s", p.NetPay)
}

func TestMapSynthesizesNamedFieldsInOrder(t *testing.T) {
	p := Map(sampleRecord())

	assertItems(t, []LineItem{
		{Label: LabelBasicSalary, Amount: dec("3000")},
		{Label: LabelFixedAllowance, Amount: dec("200")},
		{Label: "Bonus", Amount: dec("500")},
	}, p.Income)
	assert.True(t, p.Gross.Equal(dec("3700")))
}

func TestMapNeverDoubleCountsPCB(t *testing.T) {
	p := Map(sampleRecord())

	assertItems(t, []LineItem{
		{Label: LabelEPFEmployee, Amount: dec("330")},
		{Label: LabelSOCSOEmployee, Amount: dec("19.75")},
		{Label: LabelEISEmployee, Amount: dec("7.9")},
		{Label: "PCB/MTD", Amount: dec("150")},
	}, p.Deduction)
	assert.True(t, p.TotalDeduction.Equal(dec("507.65")))
}

func TestMapNamedPCBAloneIsNotDeducted(t *testing.T) {
	rec := Record{Deductions: &DeductionFields{EPFEmployee: 100, PCB: 80}}
	p := Map(rec)

	assertItems(t, []LineItem{{Label: LabelEPFEmployee, Amount: dec("100")}}, p.Deduction)
}

func TestMapNetIsGrossMinusDeductions(t *testing.T) {
	p := Map(sampleRecord())
	assert.True(t, p.NetPay.Equal(p.Gross.Sub(p.TotalDeduction)))
	assert.True(t, p.NetPay.Equal(dec("3192.35")))
}

func TestMapPrefersArraysVerbatim(t *testing.T) {
	rec := sampleRecord()
	rec.IncomesArray = []Item{
		{Label: "Gaji Pokok", Amount: "RM 4,000.00"},
		{Label: "Elaun", Amount: 0},
	}
	rec.DeductionsArray = []Item{{Label: "KWSP", Amount: 440}}

	p := Map(rec)

	assertItems(t, []LineItem{
		{Label: "Gaji Pokok", Amount: dec("4000")},
		{Label: "Elaun", Amount: dec("0")},
	}, p.Income)
	assertItems(t, []LineItem{{Label: "KWSP", Amount: dec("440")}}, p.Deduction)
	assert.True(t, p.Gross.Equal(dec("4000")))
	assert.True(t, p.NetPay.Equal(dec("3560")))
}

func TestMapEmployerAndYTD(t *testing.T) {
	p := Map(sampleRecord())

	assertItems(t, []LineItem{
		{Label: LabelEPFEmployer, Amount: dec("390")},
		{Label: LabelSOCSOEmployer, Amount: dec("69.05")},
		{Label: LabelEISEmployer, Amount: dec("7.9")},
	}, p.EmployerContribution)
	assertItems(t, []LineItem{
		{Label: LabelEPFEmployee, Amount: dec("990")},
		{Label: LabelSOCSOEmployee, Amount: dec("59.25")},
		{Label: LabelEISEmployee, Amount: dec("23.7")},
		{Label: LabelPCB, Amount: dec("450")},
	}, p.YTD.Employee)
	assert.Len(t, p.YTD.Employer, 3)
}

func TestMapEmptyRecord(t *testing.T) {
	p := Map(Record{Employee: RecordEmployee{FullName: "Siti"}})

	assert.Empty(t, p.Income)
	assert.Empty(t, p.Deduction)
	assert.True(t, p.Gross.IsZero())
	assert.True(t, p.NetPay.IsZero())
	assert.Equal(t, "Siti", p.Employee.Name)
}

func TestFiguresSplitsTaxFromYTD(t *testing.T) {
	f := FiguresOf(Map(sampleRecord()))

	assert.True(t, f.Basic.Equal(dec("3000")))
	assert.True(t, f.FixedAllowance.Equal(dec("200")))
	assertItems(t, []LineItem{{Label: "Bonus", Amount: dec("500")}}, f.OtherIncome)
	assertItems(t, []LineItem{{Label: "PCB/MTD", Amount: dec("150")}}, f.OtherDeduction)
	assert.True(t, f.YTDEmployee.Equal(dec("1072.95")))
	assert.True(t, f.YTDEmployer.Equal(dec("1400.85")))
	assert.True(t, f.MTD.Equal(dec("450")))
}

func TestFiguresKeepRepeatedSlotLabelsAsExtraRows(t *testing.T) {
	p := Map(Record{IncomesArray: []Item{
		{Label: "Basic Salary", Amount: 3000},
		{Label: "Basic Salary Arrears", Amount: 250},
		{Label: "Fixed Allowance", Amount: 200},
		{Label: "Fixed Allowance (Transport)", Amount: 100},
	}})
	f := FiguresOf(p)

	assert.True(t, f.Basic.Equal(dec("3000")))
	assert.True(t, f.FixedAllowance.Equal(dec("200")))
	assertItems(t, []LineItem{
		{Label: "Basic Salary Arrears", Amount: dec("250")},
		{Label: "Fixed Allowance (Transport)", Amount: dec("100")},
	}, f.OtherIncome)
	shown := f.Basic.Add(f.FixedAllowance).Add(f.OtherIncome.Total())
	assert.True(t, shown.Equal(p.Gross), "shown %s gross %s", shown, p.Gross)
}

func TestDecodeRecord(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{
		"employee": {"fullName": "Ali"},
		"period": {"month": "May", "year": 2024},
		"incomesArray": [{"label": "Basic", "amount": 2500.10}],
		"deductionsArray": [{"label": "EPF", "amount": "RM 275.00"}]
	}`))
	require.NoError(t, err)

	p := Map(rec)
	assert.True(t, p.Gross.Equal(dec("2500.1")))
	assert.True(t, p.NetPay.Equal(dec("2225.1")))

	_, err = DecodeRecord([]byte(`{"employee":`))
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestParseFormatAndFilename(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	assert.Equal(t, "payslip-ali-bin-abu-march-2025", Filename(Map(sampleRecord())))
}
