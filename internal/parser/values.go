package parser

import (
	"regexp"

	"github.com/shopspring/decimal"

	"nfscan/internal/domain"
)

var (
	// No \b anchors here: zero-width characters in the PDF text layer glue
	// the section title straight onto "PIS".
	pisRe    = regexp.MustCompile(`PIS\s*R\$\s*([\d.,]+)`)
	cofinsRe = regexp.MustCompile(`COFINS\s*R\$\s*([\d.,]+)`)
	irRe     = regexp.MustCompile(`IR\s*R\$\s*([\d.,]+)`)
	inssRe   = regexp.MustCompile(`INSS\s*R\$\s*([\d.,]+)`)
	csllRe   = regexp.MustCompile(`CSLL\s*R\$\s*([\d.,]+)`)

	valorServicosRe     = regexp.MustCompile(`Valor dos Serviços:\s*R\$\s*([\d.,]+)`)
	descontoRe          = regexp.MustCompile(`Desconto:\s*R\$\s*([\d.,]+)`)
	valorLiquidoRe      = regexp.MustCompile(`Valor Líquido:\s*R\$\s*([\d.,]+)`)
	baseCalculoRe       = regexp.MustCompile(`Base de Cálculo:\s*R\$\s*([\d.,]+)`)
	aliquotaRe          = regexp.MustCompile(`Alíquota:\s*([\d.,%]+)`)
	valorISSRe          = regexp.MustCompile(`Valor ISS:\s*R\$\s*([\d.,]+)`)
	outrasRetencoesRe   = regexp.MustCompile(`Outras Retenções:\s*R\$\s*([\d.,]+)`)
	retencoesFederaisRe = regexp.MustCompile(`Retenções Federais:\s*R\$\s*([\d.,]+)`)
)

func moedaDoGrupo(re *regexp.Regexp, janela string) decimal.Decimal {
	if m := re.FindStringSubmatch(janela); m != nil {
		return ParseMoeda(m[1])
	}
	return decimal.Zero
}

// extrairTributosFederais reads the five federal withholdings. Each field is
// extracted independently and defaults to zero, so a layout that omits or
// reorders one line still yields the others.
func extrairTributosFederais(texto string) domain.TributosFederais {
	texto = Normalize(texto)

	janela, ok := Secao(texto, "Tributos Federais", "Detalhamento de Valores")
	if !ok {
		return domain.TributosFederais{}
	}

	return domain.TributosFederais{
		PIS:    moedaDoGrupo(pisRe, janela),
		COFINS: moedaDoGrupo(cofinsRe, janela),
		IR:     moedaDoGrupo(irRe, janela),
		INSS:   moedaDoGrupo(inssRe, janela),
		CSLL:   moedaDoGrupo(csllRe, janela),
	}
}

// extrairValores reads the financial breakdown. Like the federal taxes, every
// field is independent with a zero default; only a missing section makes the
// whole entity absent.
func extrairValores(texto string) *domain.Valores {
	texto = Normalize(texto)

	janela, ok := Secao(texto, "Detalhamento de Valores", "Avisos")
	if !ok {
		return nil
	}

	aliquota := decimal.Zero
	if m := aliquotaRe.FindStringSubmatch(janela); m != nil {
		aliquota = ParsePercentual(m[1])
	}

	return &domain.Valores{
		ValorServicos:     moedaDoGrupo(valorServicosRe, janela),
		Desconto:          moedaDoGrupo(descontoRe, janela),
		ValorLiquido:      moedaDoGrupo(valorLiquidoRe, janela),
		BaseCalculo:       moedaDoGrupo(baseCalculoRe, janela),
		Aliquota:          aliquota,
		ValorISS:          moedaDoGrupo(valorISSRe, janela),
		OutrasRetencoes:   moedaDoGrupo(outrasRetencoesRe, janela),
		RetencoesFederais: moedaDoGrupo(retencoesFederaisRe, janela),
	}
}
