package parser

import (
	"regexp"
	"time"
)

var (
	prefeituraRe = regexp.MustCompile(`(?i)PREFEITURA MUNICIPAL DE\s*`)
	secretariaRe = regexp.MustCompile(`(?i)SECRETARIA\s*MUNICIPAL DE\s*`)
	numeroNFSeRe = regexp.MustCompile(`Número da NFS-e\s*(\d+)`)
)

// cabecalho carries the header fields of an invoice. Everything is optional
// here; the orchestrator applies the mandatory-field defaults.
type cabecalho struct {
	origem            *string
	orgao             *string
	numeroNFSe        *string
	dataHoraEmissao   *time.Time
	competencia       *string
	codigoVerificacao *string
	numeroRPS         *string
	nfseSubstituida   *string
	localPrestacao    *string
}

// extrairCabecalho reads the document header: issuing municipality and organ,
// invoice number, emission timestamp, competence, verification code, RPS
// number, replaced invoice and place of service. Each field is bounded by the
// label that follows it in the municipal layout.
func extrairCabecalho(texto string) cabecalho {
	texto = Normalize(texto)

	var cab cabecalho

	if v, ok := valorEntreRe(texto, prefeituraRe, "SECRETARIA", "DIRETORIA", "Número"); ok {
		if origem := Normalize(v); origem != "" {
			origem = "Prefeitura Municipal de " + origem
			cab.origem = &origem
		}
	}

	if v, ok := valorEntreRe(texto, secretariaRe, "DIRETORIA", "Número"); ok {
		if orgao := Normalize(v); orgao != "" {
			orgao = "Secretaria Municipal de " + orgao
			cab.orgao = &orgao
		}
	}

	if m := numeroNFSeRe.FindStringSubmatch(texto); m != nil {
		cab.numeroNFSe = &m[1]
	}

	if v, ok := ValorEntre(texto, "Data/Hora Emissão:", "Competência"); ok {
		cab.dataHoraEmissao = ParseDataHora(v)
	}

	if v, ok := ValorEntre(texto, "Competência:", "Código"); ok {
		if competencia := Normalize(v); competencia != "" {
			cab.competencia = &competencia
		}
	}

	if v, ok := ValorEntre(texto, "Código de Verificação:", "Número do RPS"); ok {
		if codigo := Normalize(v); codigo != "" {
			cab.codigoVerificacao = &codigo
		}
	}

	if v, ok := ValorEntre(texto, "Número do RPS:", "Nº NFSe Substituída"); ok {
		if rps := Normalize(v); rps != "" {
			cab.numeroRPS = &rps
		}
	}

	if v, ok := ValorEntre(texto, "Nº NFSe Substituída:", "Local da Prestação"); ok {
		if substituida := Normalize(v); substituida != "" && substituida != ausente {
			cab.nfseSubstituida = &substituida
		}
	}

	if v, ok := ValorEntre(texto, "Local da Prestação:", "Dados do Prestador"); ok {
		if local := Normalize(v); local != "" {
			cab.localPrestacao = &local
		}
	}

	return cab
}
