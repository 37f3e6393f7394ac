package voucher

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(raw); f {
	case "":
		return FormatPDF, nil
	case FormatPDF, FormatHTML:
		return f, nil
	}
	return "", ErrUnsupportedFormat
}

func (f Format) ContentType() string {
	if f == FormatHTML {
		return "text/html; charset=utf-8"
	}
	return "application/pdf"
}
