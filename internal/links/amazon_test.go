package links

import "testing"

func TestAmazonSearchURL(t *testing.T) {
	tests := []struct {
		name   string
		book   string
		author string
		want   string
	}{
		{
			name:   "simple title and author",
			book:   "Dune",
			author: "Frank Herbert",
			want:   "https://www.amazon.in/s?k=Dune%20Frank%20Herbert%20book",
		},
		{
			name:   "special characters escaped",
			book:   "Harry Potter & the Philosopher's Stone",
			author: "J.K. Rowling",
			want:   "https://www.amazon.in/s?k=Harry%20Potter%20%26%20the%20Philosopher%27s%20Stone%20J.K.%20Rowling%20book",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AmazonSearchURL(tt.book, tt.author); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
