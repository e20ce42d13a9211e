package preview

import _ "embed"

//go:embed placeholders/empty-writing-embed.svg
var emptyWritingSVG string

// Placeholder returns the asset shown when an embed's preview is missing or
// cannot be decoded.
func Placeholder() Asset {
	return Asset{Kind: KindVector, Data: emptyWritingSVG, Placeholder: true}
}
