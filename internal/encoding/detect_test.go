package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newgestao/drivercontrol/internal/encoding"
)

func TestNewUTF8Reader(t *testing.T) {
	const header = "Data;Plataforma;Valor\n"

	tests := []struct {
		name        string
		input       []byte
		wantText    string
		wantCharset string
	}{
		{
			name:        "utf8 passthrough",
			input:       []byte("Data;Plataforma;Valor\n05/03/2024;Uber;R$ 1.234,50\nObservação;;\n"),
			wantText:    "Data;Plataforma;Valor\n05/03/2024;Uber;R$ 1.234,50\nObservação;;\n",
			wantCharset: encoding.UTF8,
		},
		{
			name:        "utf8 bom stripped",
			input:       append([]byte{0xEF, 0xBB, 0xBF}, header...),
			wantText:    header,
			wantCharset: encoding.UTF8,
		},
		{
			name: "latin1 decoded",
			// "Observação;Preço\n" with ç = 0xE7, ã = 0xE3
			input: []byte{
				'O', 'b', 's', 'e', 'r', 'v', 'a', 0xE7, 0xE3, 'o', ';',
				'P', 'r', 'e', 0xE7, 'o', '\n',
			},
			wantText: "Observação;Preço\n",
		},
		{
			name:        "utf16 little endian",
			input:       []byte{0xFF, 0xFE, 'K', 0x00, 'm', 0x00, '\n', 0x00},
			wantText:    "Km\n",
			wantCharset: encoding.UTF16LE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, charset, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, string(got))

			if tt.wantCharset != "" {
				assert.Equal(t, tt.wantCharset, charset)
			} else {
				assert.NotEqual(t, encoding.UTF8, charset)
			}
		})
	}
}
