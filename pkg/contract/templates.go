package contract

// Template is a named contract form with placeholder slots.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// DefaultTemplates is the built-in template catalogue, ordered as presented
// to users.
var DefaultTemplates = []Template{
	{
		ID:   "sale_v1",
		Name: "عقد بيع نهائي",
		Content: `
      <h1 style="text-align: center; color: #002147;">عقد بيع ابتدائي</h1>
      <p>أنه في يوم <strong>{{DATE}}</strong>، تم الاتفاق بين:</p>
      <p><strong>الطرف الأول (البائع):</strong> {{SELLER_NAME}}</p>
      <p><strong>الطرف الثاني (المشتري):</strong> {{BUYER_NAME}}</p>
      <h3>تمهيد</h3>
      <p>يمتلك الطرف الأول الوحدة رقم {{UNIT_NO}} الكائنة في {{ADDRESS}}...</p>
      <p>تم البيع نظير مبلغ وقدره <strong>{{PRICE}}</strong> جنيه مصري فقط لا غير.</p>
    `,
	},
	{
		ID:   "rent_v1",
		Name: "عقد إيجار وحدة",
		Content: `
      <h1 style="text-align: center; color: #002147;">عقد إيجار محدد المدة</h1>
      <p>السيد المؤجر: {{SELLER_NAME}}</p>
      <p>السيد المستأجر: {{BUYER_NAME}}</p>
      <p>مدة الإيجار: {{DURATION}} تبدأ من تاريخ {{DATE}}</p>
    `,
	},
}

// FindTemplate returns the template with the given id from the catalogue.
func FindTemplate(id string) (*Template, bool) {
	for i := range DefaultTemplates {
		if DefaultTemplates[i].ID == id {
			return &DefaultTemplates[i], true
		}
	}
	return nil, false
}
