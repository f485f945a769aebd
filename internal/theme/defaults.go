package theme

// DefaultName is the name of the built-in theme.
const DefaultName = "default"

// Default returns the built-in classic theme: A4 portrait, Times New Roman,
// justified body text.
func Default() Theme {
	return Theme{
		Name: DefaultName,
		Page: PageLayout{
			PageSize:     PageA4,
			Orientation:  Portrait,
			MarginInner:  2.5,
			MarginOuter:  2.0,
			MarginTop:    2.5,
			MarginBottom: 2.5,
			MarginHeader: 1.25,
			MarginFooter: 1.25,
		},
		Styles: StyleCatalogSource{
			Normal: StyleSpec{
				FontFamily:  ptr("Times New Roman"),
				FontSize:    ptr(12.0),
				Alignment:   ptr(AlignJustify),
				LineSpacing: ptr(1.15),
				SpaceAfter:  ptr(6.0),
			},
			Heading1: StyleSpec{
				FontFamily:  ptr("Times New Roman"),
				FontSize:    ptr(18.0),
				Bold:        ptr(true),
				Alignment:   ptr(AlignCenter),
				SpaceBefore: ptr(24.0),
				SpaceAfter:  ptr(12.0),
			},
			Heading2: StyleSpec{
				FontFamily:  ptr("Times New Roman"),
				FontSize:    ptr(14.0),
				Bold:        ptr(true),
				SpaceBefore: ptr(18.0),
				SpaceAfter:  ptr(6.0),
			},
			Heading3: StyleSpec{
				FontFamily:  ptr("Times New Roman"),
				FontSize:    ptr(13.0),
				Bold:        ptr(true),
				Italic:      ptr(true),
				SpaceBefore: ptr(12.0),
				SpaceAfter:  ptr(6.0),
			},
			Heading4: StyleSpec{
				FontFamily:  ptr("Times New Roman"),
				FontSize:    ptr(12.0),
				Bold:        ptr(true),
				SpaceBefore: ptr(12.0),
				SpaceAfter:  ptr(3.0),
			},
			LatinText: StyleSpec{
				Italic:     ptr(true),
				Color:      ptr("1F3864"),
				IndentLeft: ptr(0.5),
			},
			Gloss: StyleSpec{
				Italic: ptr(true),
				Color:  ptr("595959"),
			},
			Note: StyleSpec{
				FontSize:   ptr(10.0),
				SpaceAfter: ptr(3.0),
			},
			SectionNumber: StyleSpec{
				IndentFirstLine: ptr(0.0),
			},
			TableHeader: StyleSpec{
				FontSize:  ptr(11.0),
				Bold:      ptr(true),
				Alignment: ptr(AlignCenter),
			},
			TableCell: StyleSpec{
				FontSize:  ptr(11.0),
				Alignment: ptr(AlignLeft),
			},
			Blockquote: StyleSpec{
				Italic:      ptr(true),
				IndentLeft:  ptr(1.27),
				IndentRight: ptr(1.27),
			},
		},
		Table: &TableStyle{
			BorderColor: "000000",
			BorderSize:  0.5,
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
