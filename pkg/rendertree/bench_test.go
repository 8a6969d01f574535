package rendertree

import "testing"

func buildList(b *Builder, rows int) {
	b.OpenElement(0, "ul")
	b.AddAttribute(1, "class", StringValue("list"))
	for i := 0; i < rows; i++ {
		b.OpenRegion(2)
		b.OpenElement(0, "li")
		b.SetKey(i)
		b.AddAttribute(1, "class", StringValue("row"))
		b.AddText(2, "item")
		b.CloseElement()
		b.CloseRegion()
	}
	b.CloseElement()
}

func BenchmarkBuildSmallTree(b *testing.B) {
	builder := New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder.Clear()
		buildList(builder, 10)
	}
}

func BenchmarkBuildLargeTree(b *testing.B) {
	builder := New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder.Clear()
		buildList(builder, 1000)
	}
}

func BenchmarkBulkAttributesWithDedup(b *testing.B) {
	attrs := []Attr{
		{Name: "class", Value: StringValue("a")},
		{Name: "id", Value: StringValue("x")},
		{Name: "class", Value: StringValue("b")},
		{Name: "hidden", Value: BoolValue(false)},
		{Name: "hidden", Value: BoolValue(true)},
	}
	builder := New()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		builder.Clear()
		builder.OpenElement(0, "div")
		builder.AddMultipleAttributes(1, attrs)
		builder.CloseElement()
	}
}
