package parser

import (
	"regexp"
	"strings"

	"nfscan/internal/domain"
)

// papel identifies which side of the invoice a company window belongs to.
type papel int

const (
	papelPrestador papel = iota
	papelTomador
)

var (
	inscricaoEstadualRe = regexp.MustCompile(`Inscrição Estadual:\s*(\S+)`)
	emailCandidatoRe    = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w{2,}`)
	emailValidoRe       = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,}$`)
)

// extrairEmpresa reads one company (prestador or tomador) out of the full
// document text. A missing section anchor means the company is absent and the
// caller decides the fallback.
func extrairEmpresa(texto string, p papel) *domain.Empresa {
	texto = Normalize(texto)

	var secao string
	var ok bool
	if p == papelPrestador {
		secao, ok = Secao(texto, "Dados do Prestador", "Dados do Tomador")
	} else {
		secao, ok = Secao(texto, "Dados do Tomador", "Discriminação dos Serviços")
	}
	if !ok {
		return nil
	}

	razaoSocial := ValorAposRotulo(secao, "Razão Social")
	cnpj := ParseCNPJCPF(secao)
	inscricaoMunicipal := ValorAposRotulo(secao, "Inscrição Municipal")

	var inscricaoEstadual *string
	if m := inscricaoEstadualRe.FindStringSubmatch(secao); m != nil {
		inscricaoEstadual = &m[1]
	}

	if inscricaoMunicipal != nil {
		im := *inscricaoMunicipal
		if i := strings.Index(im, "Inscrição Estadual"); i >= 0 {
			im = strings.TrimSpace(im[:i])
		}
		im = SomenteDigitos(im)
		inscricaoMunicipal = &im
	}

	if inscricaoEstadual != nil {
		ie := *inscricaoEstadual
		if i := strings.Index(ie, "Município"); i >= 0 {
			ie = strings.TrimSpace(ie[:i])
		}
		if ie == ausente {
			inscricaoEstadual = nil
		} else {
			inscricaoEstadual = &ie
		}
	}

	endereco := extrairEndereco(secao)
	contato := extrairContato(secao)

	var nomeFantasia *string
	if p == papelPrestador {
		nomeFantasia = ValorAposRotulo(secao, "Nome Fantasia")
	}

	// The generic label boundary leaves the "Nome" of a following
	// "Nome Fantasia" glued to the corporate name.
	if razaoSocial != nil && strings.Contains(*razaoSocial, "Nome") {
		rs := strings.ReplaceAll(*razaoSocial, " Nome", "")
		razaoSocial = &rs
	}

	empresa := &domain.Empresa{
		InscricaoMunicipal: inscricaoMunicipal,
		InscricaoEstadual:  inscricaoEstadual,
		NomeFantasia:       nomeFantasia,
		Endereco:           endereco,
		Contato:            contato,
	}
	if razaoSocial != nil {
		empresa.RazaoSocial = *razaoSocial
	}
	if cnpj != nil {
		empresa.CNPJ = *cnpj
	}
	return empresa
}

// extrairContato pulls the phone and a validated email address out of a
// company window. Both channels are independent; nil when neither exists.
func extrairContato(secao string) *domain.Contato {
	telefone := ValorAposRotulo(secao, "Telefone")

	var email *string
	if bruto := ValorAposRotulo(secao, "Email"); bruto != nil {
		for _, candidato := range emailCandidatoRe.FindAllString(*bruto, -1) {
			if emailValidoRe.MatchString(candidato) {
				c := candidato
				email = &c
				break
			}
		}
	}

	if telefone == nil && email == nil {
		return nil
	}
	return &domain.Contato{Telefone: telefone, Email: email}
}
