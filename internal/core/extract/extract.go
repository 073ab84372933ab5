package extract

import "github.com/ymatsuda/docfiler/internal/core/domain"

// All runs every field extractor over normalized text. Each field is
// independent; a miss in one never affects the others.
func All(text string) domain.Fields {
	return domain.Fields{
		Patient:    Patient(text),
		Doctor:     Doctor(text),
		Clinic:     Clinic(text),
		Addressee:  InvoiceAddressee(text),
		Staff:      Staff(text),
		Client:     Client(text),
		ClientDept: ClientDept(text),
		Date:       Date(text),
	}
}
