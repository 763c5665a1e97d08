package orchestrator

import (
	"fmt"

	"subtrellis/internal/codectables"
	"subtrellis/internal/cue"
	"subtrellis/internal/decoder"
	"subtrellis/internal/langverify"
	"subtrellis/internal/merge"
)

// LocalPipeline runs decode -> verify -> parse -> merge -> serialize
// directly against two in-memory byte buffers, skipping the catalog and
// fetch stages. It exists for the CLI's manual-testing driver and for
// tests that want to exercise the core pipeline without an HTTP client.
func LocalPipeline(mainBytes, transBytes []byte, mainTag, transTag codectables.LanguageTag, thresholdMS int64) (string, error) {
	mainStream, err := decodeVerifyParse(mainBytes, mainTag)
	if err != nil {
		return "", fmt.Errorf("main: %w", err)
	}
	transStream, err := decodeVerifyParse(transBytes, transTag)
	if err != nil {
		return "", fmt.Errorf("translation: %w", err)
	}

	merged, err := merge.Merge(mainStream, transStream, thresholdMS)
	if err != nil {
		return "", newErr(KindEmptyMerge, "", err)
	}
	return cue.Serialize(merged), nil
}

func decodeVerifyParse(raw []byte, tag codectables.LanguageTag) (cue.Stream, error) {
	hint := codectables.ToTwoLetter(tag)
	text, _ := decoder.Decode(raw, hint)
	if decoder.FinalCheck(text) {
		return nil, newErr(KindDecodeReplacementChars, "", errReplacementChars)
	}
	if langverify.Verify(text, tag) == langverify.Reject {
		return nil, newErr(KindLangMismatch, "", errLangMismatch)
	}
	return cue.Parse(text)
}
