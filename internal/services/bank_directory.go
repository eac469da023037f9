package services

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
)

// Bank is a payout destination accepted for withdrawals. Code is the IFSC
// bank prefix.
type Bank struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	BIC      string `json:"bic"`
	LogoData string `json:"logoData,omitempty"`
}

const (
	DefaultLogosDir = "./static/bank-logos"
	// PlaceholderLogo is served when a bank has no logo file.
	PlaceholderLogo = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200"><rect width="200" height="200" fill="#f0f0f0"/><path d="M100 60c-22.1 0-40 17.9-40 40s17.9 40 40 40 40-17.9 40-40-17.9-40-40-40zm0 65c-13.8 0-25-11.2-25-25s11.2-25 25-25 25 11.2 25 25-11.2 25-25 25z" fill="#999"/><text x="100" y="170" text-anchor="middle" font-family="Arial" font-size="14" fill="#666">BANK</text></svg>`
)

var payoutBanks = []Bank{
	{Code: "SBIN", Name: "State Bank of India", BIC: "SBININBBXXX"},
	{Code: "HDFC", Name: "HDFC Bank", BIC: "HDFCINBBXXX"},
	{Code: "ICIC", Name: "ICICI Bank", BIC: "ICICINBBXXX"},
	{Code: "UTIB", Name: "Axis Bank", BIC: "AXISINBBXXX"},
	{Code: "KKBK", Name: "Kotak Mahindra Bank", BIC: "KKBKINBBXXX"},
	{Code: "PUNB", Name: "Punjab National Bank", BIC: "PUNBINBBXXX"},
	{Code: "BARB", Name: "Bank of Baroda", BIC: "BARBINBBXXX"},
	{Code: "CNRB", Name: "Canara Bank", BIC: "CNRBINBBXXX"},
	{Code: "UBIN", Name: "Union Bank of India", BIC: "UBININBBXXX"},
	{Code: "IDIB", Name: "Indian Bank", BIC: "IDIBINBBXXX"},
	{Code: "YESB", Name: "Yes Bank", BIC: "YESBINBBXXX"},
	{Code: "IDFB", Name: "IDFC First Bank", BIC: "IDFBINBBXXX"},
	{Code: "INDB", Name: "IndusInd Bank", BIC: "INDBINBBXXX"},
	{Code: "FDRL", Name: "Federal Bank", BIC: "FDRLINBBXXX"},
}

var bankLogos = map[string]string{
	"SBIN": "sbi.svg",
	"HDFC": "hdfc.svg",
	"ICIC": "icici.svg",
	"UTIB": "axis.svg",
	"KKBK": "kotak.svg",
	"PUNB": "pnb.svg",
	"BARB": "bob.svg",
	"CNRB": "canara.svg",
	"UBIN": "union.svg",
	"YESB": "yes.svg",
}

// BankDirectory lists the banks withdrawals may be paid to.
type BankDirectory struct {
	logosDir string
}

func NewBankDirectory(logosDir string) *BankDirectory {
	if logosDir == "" {
		logosDir = DefaultLogosDir
	}
	return &BankDirectory{logosDir: logosDir}
}

// Banks returns the directory with logos inlined as data URLs.
func (d *BankDirectory) Banks() []Bank {
	banks := make([]Bank, len(payoutBanks))
	copy(banks, payoutBanks)
	for i := range banks {
		banks[i].LogoData = d.LoadLogo(banks[i].Code)
	}
	return banks
}

// Lookup finds a bank by code, or by the first four characters of an IFSC.
func (d *BankDirectory) Lookup(code string) (Bank, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) > 4 {
		code = code[:4]
	}
	for _, b := range payoutBanks {
		if b.Code == code {
			return b, true
		}
	}
	return Bank{}, false
}

func (d *BankDirectory) LoadLogo(code string) string {
	filename, ok := bankLogos[code]
	if !ok {
		return svgDataURL([]byte(PlaceholderLogo))
	}

	if data, err := os.ReadFile(filepath.Join(d.logosDir, filename)); err == nil {
		return svgDataURL(data)
	}
	return svgDataURL([]byte(PlaceholderLogo))
}

func svgDataURL(data []byte) string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(data)
}
