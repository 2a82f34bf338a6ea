// Package survey holds the design-discovery question catalogue and the
// answer model it produces. Nothing here is persisted: answers live in
// memory until they are formatted into one submission and sent.
package survey

// QuestionType enumerates the supported input kinds.
type QuestionType string

const (
	TypeEmail    QuestionType = "email"
	TypeText     QuestionType = "text"
	TypeTextarea QuestionType = "textarea"
	TypeRadio    QuestionType = "radio"
	TypeCheckbox QuestionType = "checkbox"
	TypeFile     QuestionType = "file"
)

// OtherOption is the sentinel choice that unlocks the free-text
// "please specify" field on radio and checkbox questions.
const OtherOption = "Diğer"

// Question is one step of the wizard. The catalogue is static
// configuration; ID doubles as the answer key.
type Question struct {
	ID              string
	Text            string
	Type            QuestionType
	Required        bool
	Options         []string
	HasOtherSpecify bool
	Multiple        bool
	Accept          string
	Placeholder     string
}

// OtherKey is the answer-set key of the auxiliary free text belonging to
// this question's "Diğer" choice.
func (q Question) OtherKey() string {
	return q.ID + "_other"
}

// DefaultQuestions returns the design-discovery catalogue in wizard order.
func DefaultQuestions() []Question {
	return []Question{
		{ID: "email", Text: "Projenizle ilgili size ulaşabilmemiz için e-posta adresiniz", Type: TypeEmail, Required: true},
		{ID: "space_photos", Text: "Mekanın farklı köşelerden çekilmiş fotoğraflarını yükler misin?", Type: TypeFile, Required: true, Multiple: true, Accept: "image/*"},
		{ID: "floor_plan", Text: "Mekanın ölçülü planını bizimle paylaşır mısın?", Type: TypeFile, Required: true, Accept: "image/*,application/pdf,.dwg,.dxf"},
		{ID: "inspiration_photos", Text: "Beğendiğin iç mekan örnekleri var mı?", Type: TypeFile, Required: true, Multiple: true, Accept: "image/*"},
		{ID: "atmosphere", Text: "Mekanında nasıl bir atmosfer hayal ediyorsun?", Type: TypeTextarea, Required: true},
		{ID: "users", Text: "Bu mekanı kimler kullanacak?", Type: TypeTextarea, Required: true},
		{ID: "functions", Text: "Seçtiğin mekan için eklemek istediğin işlev var mı?", Type: TypeCheckbox, Options: []string{"Dinlenme ve Uyuma", "Oturma ve Misafir Ağırlama", "Çalışma Alanı", "Hobi alanı", OtherOption}, HasOtherSpecify: true},
		{ID: "usage_times", Text: "Günün hangi saatlerinde bu alanı aktif olarak kullanıyorsun?", Type: TypeCheckbox, Options: []string{"Sabah", "Öğle", "Akşam", "Gece"}},
		{ID: "problems_to_solve", Text: "Yaşam alanında çözmemizi istediğin bir konu var mı?", Type: TypeTextarea},
		{ID: "residents", Text: "Evde çocuk ya da evcil hayvan var mı?", Type: TypeRadio, Options: []string{"Sadece çocuk var", "Sadece evcil hayvan var", "Her ikisi de var", "Her ikisi de yok"}},
		{ID: "expectations", Text: "Tasarlanmasını istediğin mekanda en temel beklentin nedir?", Type: TypeTextarea},
		{ID: "style", Text: "Sence seni en iyi yansıtan dekorasyon tarzı hangisi?", Type: TypeRadio, Options: []string{"Modern", "Bohem", "İskandinav", "Klasik", OtherOption}, HasOtherSpecify: true},
		{ID: "colors", Text: "Mekan içerisinde hangi renkleri/tonları ön planda görmek istersin?", Type: TypeCheckbox, Options: []string{"Beyaz ve açık nötr tonlar", "Gri Tonları", "Krem/Bej Tonları", "Toprak Tonları (kahve, kum vs.)", "Pastel Tonlar(pudra, mint vs.)", "Canlı Renkler(sarı, turuncu vs.)", "Koyu Tonlar (siyah, antrasit vs.)", OtherOption}, HasOtherSpecify: true},
		{ID: "materials", Text: "Hangi malzeme tarzı sana daha yakın?", Type: TypeRadio, Options: []string{"Doğal Malzemeler (ahşap, taş, keten vs.)", "Modern Malzeme ( cam, metal, kaplama yüzeyler vs.)", "İkisinin dengesi olsun isterim"}},
		{ID: "fabric_sensitivity", Text: "Kumaş seçiminde özel bir isteğin ya da hassasiyetin var mı?", Type: TypeTextarea, Required: true},
		{ID: "budget", Text: "Proje için düşündüğün yaklaşık bütçeyi paylaşır mısın?", Type: TypeCheckbox, Options: []string{"70.000 TL - 90.000 TL", "90.000 TL - 110.000 TL", "110.000 TL - 130.000 TL", "130.000 TL - 150.000 TL"}},
		{ID: "priority", Text: "Mekan içerisinde senin için en öncelikli olan ne?", Type: TypeRadio, Options: []string{"Görsellik", "İşlevsellik", "Konfor"}},
		{ID: "notes", Text: "İç mimarımıza iletmek istediğin bir notun var mı?", Type: TypeTextarea, Required: true, Placeholder: "Cevabınızı buraya yazın..."},
	}
}
