package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NaoDisponivel is the sentinel written into mandatory text fields that could
// not be recovered from the source document.
const NaoDisponivel = "N/A"

// Endereco represents a postal address. Logradouro and Numero are always
// present (possibly empty); the remaining fields are nil when the source text
// does not carry them.
type Endereco struct {
	Logradouro string  `json:"logradouro"`
	Numero     string  `json:"numero"`
	Bairro     *string `json:"bairro"`
	CEP        *string `json:"cep"`
	Municipio  *string `json:"municipio"`
	UF         *string `json:"uf"`
}

// Contato holds the contact channels of a company. Both fields are optional
// and independently present.
type Contato struct {
	Telefone *string `json:"telefone"`
	Email    *string `json:"email"`
}

// Empresa represents a company on either side of the invoice (prestador or
// tomador). RazaoSocial and CNPJ fall back to NaoDisponivel when the whole
// company section is missing from the document.
type Empresa struct {
	RazaoSocial        string    `json:"razao_social"`
	CNPJ               string    `json:"cnpj"`
	InscricaoMunicipal *string   `json:"inscricao_municipal"`
	InscricaoEstadual  *string   `json:"inscricao_estadual"`
	NomeFantasia       *string   `json:"nome_fantasia"`
	Endereco           *Endereco `json:"endereco"`
	Contato            *Contato  `json:"contato"`
}

// ServicoDetalhe describes the service the invoice bills for.
type ServicoDetalhe struct {
	Descricao          string  `json:"descricao"`
	CodigoServico      *string `json:"codigo_servico"`
	AtividadeDescricao *string `json:"atividade_descricao"`
	CNAE               *string `json:"cnae"`
	CNAEDescricao      *string `json:"cnae_descricao"`
	Observacoes        *string `json:"observacoes"`
}

// TributosFederais holds the five federal withholding amounts. Every field
// defaults to zero.
type TributosFederais struct {
	PIS    decimal.Decimal `json:"pis"`
	COFINS decimal.Decimal `json:"cofins"`
	IR     decimal.Decimal `json:"ir"`
	INSS   decimal.Decimal `json:"inss"`
	CSLL   decimal.Decimal `json:"csll"`
}

// Valores holds the financial breakdown of the invoice. Aliquota is a ratio in
// [0, 1], not a percentage literal.
type Valores struct {
	ValorServicos     decimal.Decimal `json:"valor_servicos"`
	Desconto          decimal.Decimal `json:"desconto"`
	ValorLiquido      decimal.Decimal `json:"valor_liquido"`
	BaseCalculo       decimal.Decimal `json:"base_calculo"`
	Aliquota          decimal.Decimal `json:"aliquota"`
	ValorISS          decimal.Decimal `json:"valor_iss"`
	OutrasRetencoes   decimal.Decimal `json:"outras_retencoes"`
	RetencoesFederais decimal.Decimal `json:"retencoes_federais"`
}

// NFSe is the root record assembled from one invoice document. Entities are
// built once per parse and never mutated afterwards.
type NFSe struct {
	DataHoraEmissao   time.Time `json:"data_hora_emissao"`
	Competencia       string    `json:"competencia"`
	CodigoVerificacao string    `json:"codigo_verificacao"`
	NumeroRPS         string    `json:"numero_rps"`
	LocalPrestacao    string    `json:"local_prestacao"`
	NumeroNFSe        *string   `json:"numero_nfse"`
	Origem            *string   `json:"origem"`
	Orgao             *string   `json:"orgao"`
	NFSeSubstituida   *string   `json:"nfse_substituida"`

	Prestador Empresa `json:"prestador"`
	Tomador   Empresa `json:"tomador"`

	Servico ServicoDetalhe `json:"servico"`

	Valores          Valores          `json:"valores"`
	TributosFederais TributosFederais `json:"tributos_federais"`
}

// ExtractionRecord is a stored extraction result: a few scalar columns for
// listing plus the full canonical payload.
type ExtractionRecord struct {
	ID                   uuid.UUID       `db:"id" json:"id"`
	SourceName           string          `db:"source_name" json:"source_name"`
	Strategy             string          `db:"strategy" json:"strategy"`
	NumeroNFSe           *string         `db:"numero_nfse" json:"numero_nfse"`
	CodigoVerificacao    string          `db:"codigo_verificacao" json:"codigo_verificacao"`
	PrestadorRazaoSocial string          `db:"prestador_razao_social" json:"prestador_razao_social"`
	PrestadorCNPJ        string          `db:"prestador_cnpj" json:"prestador_cnpj"`
	ValorServicos        decimal.Decimal `db:"valor_servicos" json:"valor_servicos"`
	Payload              json.RawMessage `db:"payload" json:"payload"`
	CreatedAt            time.Time       `db:"created_at" json:"created_at"`
}
