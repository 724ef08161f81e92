package filename

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecure(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{`..\..\windows\win.ini`, "windows_win.ini"},
		{"i contain cool ümläuts.txt", "i_contain_cool_umlauts.txt"},
		{"camiseta-añil.png", "camiseta-anil.png"},
		{"café crème.jpg", "cafe_creme.jpg"},
		{"...", ""},
		{"", ""},
		{"con.txt", "_con.txt"},
		{"foto (1).jpeg", "foto_1.jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Secure(tt.in))
		})
	}
}
