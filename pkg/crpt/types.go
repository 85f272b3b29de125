package crpt

import "encoding/json"

// DocumentFormat identifies the encoding of the product_document field.
type DocumentFormat string

// Supported document formats.
const (
	FormatManual DocumentFormat = "MANUAL"
	FormatXML    DocumentFormat = "XML"
	FormatCSV    DocumentFormat = "CSV"
)

// DocType identifies the kind of document being created.
type DocType string

// DocTypeIntroduceGoods is a goods-into-circulation document.
const DocTypeIntroduceGoods DocType = "LP_INTRODUCE_GOODS"

// Document is a goods-into-circulation document. Field names follow the CRPT
// wire format, which mixes camelCase and snake_case.
type Document struct {
	Description         *Description `json:"description,omitempty"`
	ParticipantInn      string       `json:"participantInn"`
	DocID               string       `json:"doc_id"`
	DocStatus           string       `json:"doc_status"`
	DocType             string       `json:"doc_type"`
	ImportRequest       bool         `json:"importRequest"`
	OwnerInn            string       `json:"owner_inn"`
	ParticipantInnField string       `json:"participant_inn"`
	ProducerInn         string       `json:"producer_inn"`
	ProductionDate      string       `json:"production_date"`
	ProductionType      string       `json:"production_type"`
	Products            []Product    `json:"products"`
	RegDate             string       `json:"reg_date"`
	RegNumber           string       `json:"reg_number"`
}

// Description carries the participant INN for the document header.
type Description struct {
	ParticipantInn string `json:"participantInn"`
}

// Product is one marked product within a document.
type Product struct {
	CertificateDocument       string `json:"certificate_document"`
	CertificateDocumentDate   string `json:"certificate_document_date"`
	CertificateDocumentNumber string `json:"certificate_document_number"`
	OwnerInn                  string `json:"owner_inn"`
	ProducerInn               string `json:"producer_inn"`
	ProductionDate            string `json:"production_date"`
	TnvedCode                 string `json:"tnved_code"`
	UitCode                   string `json:"uit_code"`
	UituCode                  string `json:"uitu_code"`
}

// createDocumentRequest is the POST body for the create-document endpoint.
// The document travels as a JSON string inside the envelope, not as a nested
// object.
type createDocumentRequest struct {
	DocumentFormat  DocumentFormat `json:"document_format"`
	ProductDocument string         `json:"product_document"`
	ProductGroup    string         `json:"product_group"`
	Signature       string         `json:"signature"`
	Type            DocType        `json:"type"`
}

// newCreateDocumentRequest serializes doc into the envelope.
func newCreateDocumentRequest(doc *Document, signature, productGroup string) (*createDocumentRequest, error) {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	return &createDocumentRequest{
		DocumentFormat:  FormatManual,
		ProductDocument: string(encoded),
		ProductGroup:    productGroup,
		Signature:       signature,
		Type:            DocTypeIntroduceGoods,
	}, nil
}
