package valueobject

import "strings"

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// InWords renders the amount as English words using Indian numbering
// (thousand, lakh, crore), the form printed on tax invoices.
// Example: 123456789 paise -> "Rupees Twelve Lakh Thirty Four Thousand
// Five Hundred Sixty Seven and Eighty Nine Paise Only".
func (m Money) InWords() string {
	paise := int64(m)
	prefix := ""
	if paise < 0 {
		prefix = "Minus "
		paise = -paise
	}

	rupees := paise / 100
	fraction := paise % 100

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("Rupees ")
	if rupees == 0 {
		b.WriteString("Zero")
	} else {
		b.WriteString(indianWords(rupees))
	}
	if fraction > 0 {
		b.WriteString(" and ")
		b.WriteString(belowHundred(fraction))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

func indianWords(n int64) string {
	var parts []string

	if crore := n / 10_000_000; crore > 0 {
		parts = append(parts, indianWords(crore), "Crore")
		n %= 10_000_000
	}
	if lakh := n / 100_000; lakh > 0 {
		parts = append(parts, belowHundred(lakh), "Lakh")
		n %= 100_000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, belowHundred(thousand), "Thousand")
		n %= 1000
	}
	if hundreds := n / 100; hundreds > 0 {
		parts = append(parts, onesWords[hundreds], "Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, belowHundred(n))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}
