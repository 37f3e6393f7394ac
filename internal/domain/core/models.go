package core

const (
	NoData        = "Tiada Data"
	NoName        = "Tiada Nama"
	DirectoryName = "LAPORAN MAKLUMAT PEKERJA"
)

// Employee is the directory view of an employee with employment and contact details.
type Employee struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	NRIC        string `json:"nric,omitempty"`
	StaffID     string `json:"staffId,omitempty"`
	Role        string `json:"role,omitempty"`
	Status      string `json:"status"`
	Company     string `json:"company,omitempty"`
	Department  string `json:"department,omitempty"`
	Designation string `json:"designation,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	BankAccount string `json:"bankAccount,omitempty"`
}
