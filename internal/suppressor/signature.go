package suppressor

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Symbols rendered by the host, and their TeX names once backslashes are removed
var symbolReplacer = strings.NewReplacer(
	"α", "alpha", "β", "beta", "γ", "gamma", "δ", "delta", "ε", "epsilon",
	"ζ", "zeta", "η", "eta", "θ", "theta", "ι", "iota", "κ", "kappa",
	"λ", "lambda", "μ", "mu", "ν", "nu", "ξ", "xi", "π", "pi",
	"ρ", "rho", "σ", "sigma", "τ", "tau", "υ", "upsilon", "φ", "phi",
	"χ", "chi", "ψ", "psi", "ω", "omega",
	"Γ", "Gamma", "Δ", "Delta", "Θ", "Theta", "Λ", "Lambda", "Ξ", "Xi",
	"Π", "Pi", "Σ", "Sigma", "Φ", "Phi", "Ψ", "Psi", "Ω", "Omega",
	"≤", "leq", "≥", "geq", "≠", "neq", "≈", "approx", "±", "pm",
	"×", "times", "÷", "div", "∞", "infty", "→", "to", "∑", "sum",
	"∫", "int", "√", "sqrt", "∂", "partial", "∈", "in",
	"<", "lt", ">", "gt", "=", "eq",
)

// MathSignature normalizes a formula so that its TeX source and its rendered text can be compared.
func MathSignature(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, `\`, "")
	s = symbolReplacer.Replace(s)
	s = strings.ToLower(s)

	var sb strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
