package parser

import (
	"regexp"

	"nfscan/internal/domain"
)

var (
	municipioRe        = regexp.MustCompile(`Município:?\s*([^/]+?)\s*/\s*([A-Z]{2})`)
	logradouroNumeroRe = regexp.MustCompile(`(.*?),?\s*(\d+)`)
	bairroRe           = regexp.MustCompile(`-\s*([^-]*?)\s*-`)
	cepRe              = regexp.MustCompile(`CEP:?\s*(\d{5}-\d{3}|\d{8})`)
)

// extrairEndereco reads an address out of a company window. Municipality and
// state come from the "Município: X / UF" pair anywhere in the window; street
// data comes from the "Endereço:" run up to the contact labels.
//
// A window without the "Endereço" label yields a present-but-empty address,
// dropping the municipality with it. Dash-delimited neighborhoods keep the
// first dash-bounded chunk even when the neighborhood itself is hyphenated.
func extrairEndereco(texto string) *domain.Endereco {
	texto = Normalize(texto)
	if texto == "" || texto == ausente {
		return nil
	}

	var municipio, uf *string
	if m := municipioRe.FindStringSubmatch(texto); m != nil {
		mun := Normalize(m[1])
		municipio = &mun
		uf = &m[2]
	}

	enderecoTexto, ok := ValorEntre(texto, "Endereço", "Telefone", "Email")
	if !ok {
		return &domain.Endereco{Logradouro: "", Numero: ""}
	}
	enderecoTexto = Normalize(enderecoTexto)

	logradouro := ""
	numero := ""
	if m := logradouroNumeroRe.FindStringSubmatch(enderecoTexto); m != nil {
		logradouro = Normalize(m[1])
		numero = m[2]
	} else {
		logradouro = enderecoTexto
	}

	var bairro *string
	if m := bairroRe.FindStringSubmatch(enderecoTexto); m != nil {
		b := Normalize(m[1])
		bairro = &b
	}

	var cep *string
	if m := cepRe.FindStringSubmatch(texto); m != nil {
		cep = &m[1]
	}

	return &domain.Endereco{
		Logradouro: logradouro,
		Numero:     numero,
		Bairro:     bairro,
		CEP:        cep,
		Municipio:  municipio,
		UF:         uf,
	}
}
