package parser

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"nfscan/internal/config"
	"nfscan/internal/domain"
	"nfscan/internal/port"
)

func init() {
	RegisterStrategy("text", func(cfg *config.ParserConfig) (port.InvoiceParser, error) {
		return NewTextParser(), nil
	})
}

// TextParser is the deterministic, rule-based invoice parser. It implements
// port.InvoiceParser.
type TextParser struct{}

// NewTextParser creates a TextParser. It holds no state; one instance serves
// any number of concurrent parses.
func NewTextParser() *TextParser {
	return &TextParser{}
}

// Parse extracts a structured NFSe from raw document text. The contract is
// total: every field the text does not yield gets a default (current
// timestamp and competence, "N/A" sentinels, zero amounts), so the result is
// always a complete record and the error is always nil.
func (p *TextParser) Parse(_ context.Context, texto string) (*domain.NFSe, error) {
	texto = Normalize(texto)

	cab := extrairCabecalho(texto)
	prestador := extrairEmpresa(texto, papelPrestador)
	tomador := extrairEmpresa(texto, papelTomador)
	servico := extrairServico(texto)
	tributos := extrairTributosFederais(texto)
	valores := extrairValores(texto)

	agora := time.Now()

	nfse := &domain.NFSe{
		DataHoraEmissao:   agora,
		Competencia:       agora.Format("01/2006"),
		CodigoVerificacao: domain.NaoDisponivel,
		NumeroRPS:         domain.NaoDisponivel,
		LocalPrestacao:    domain.NaoDisponivel,
		NumeroNFSe:        cab.numeroNFSe,
		Origem:            cab.origem,
		Orgao:             cab.orgao,
		NFSeSubstituida:   cab.nfseSubstituida,
		TributosFederais:  tributos,
	}

	if cab.dataHoraEmissao != nil {
		nfse.DataHoraEmissao = *cab.dataHoraEmissao
	}
	if cab.competencia != nil {
		nfse.Competencia = *cab.competencia
	}
	if cab.codigoVerificacao != nil {
		nfse.CodigoVerificacao = *cab.codigoVerificacao
	}
	if cab.numeroRPS != nil {
		nfse.NumeroRPS = *cab.numeroRPS
	}
	if cab.localPrestacao != nil {
		nfse.LocalPrestacao = *cab.localPrestacao
	}

	if prestador == nil {
		prestador = &domain.Empresa{RazaoSocial: domain.NaoDisponivel, CNPJ: domain.NaoDisponivel}
	}
	if tomador == nil {
		tomador = &domain.Empresa{RazaoSocial: domain.NaoDisponivel, CNPJ: domain.NaoDisponivel}
	}
	if servico == nil {
		servico = &domain.ServicoDetalhe{Descricao: domain.NaoDisponivel}
	}
	if valores == nil {
		valores = &domain.Valores{ValorServicos: decimal.Zero}
	}

	nfse.Prestador = *prestador
	nfse.Tomador = *tomador
	nfse.Servico = *servico
	nfse.Valores = *valores

	return nfse, nil
}
