// Package templates holds the fixed catalog of selectable resume templates.
// Each entry pairs an identifier with a renderer id and a complete sample
// document used for previews and "start from template" flows.
package templates

import (
	"fmt"
	"sort"

	"github.com/Caoophuongg/quickcv/internal/types"
)

// Template is one catalog entry. Sample is never handed out directly; use
// Clone so working documents cannot mutate the catalog.
type Template struct {
	ID        types.TemplateType
	Name      string
	Thumbnail string
	Sample    types.ResumeDocument
}

// Clone returns a deep copy of the entry's sample document, ready to become
// a new working document.
func (t *Template) Clone() *types.ResumeDocument {
	return t.Sample.Clone()
}

var byID = func() map[types.TemplateType]*Template {
	m := make(map[types.TemplateType]*Template, len(catalog))
	for i := range catalog {
		e := &catalog[i]
		if _, dup := m[e.ID]; dup {
			panic(fmt.Sprintf("duplicate template id %q", e.ID))
		}
		m[e.ID] = e
	}
	return m
}()

// ByID looks up a catalog entry. Unknown ids are a data-integrity error for
// persisted documents, so callers must treat a false return accordingly.
func ByID(id types.TemplateType) (*Template, bool) {
	t, ok := byID[id]
	return t, ok
}

// List returns the catalog in display order with the blank default pinned
// first regardless of declaration order.
func List() []*Template {
	out := make([]*Template, 0, len(catalog))
	for i := range catalog {
		out = append(out, &catalog[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ID == types.Template0 {
			return true
		}
		if out[j].ID == types.Template0 {
			return false
		}
		return out[i].ID < out[j].ID
	})
	return out
}

var catalog = []Template{
	{
		ID:        types.Template0,
		Name:      "Mặc định",
		Thumbnail: "/templates/template_0.webp",
		Sample: types.ResumeDocument{
			Title:        "CV của tôi",
			ColorHex:     "#000000",
			BorderStyle:  types.BorderSquare,
			TemplateType: types.Template0,
		},
	},
	{
		ID:        types.Template1,
		Name:      "Mẫu 1",
		Thumbnail: "/templates/template_2.webp",
		Sample: types.ResumeDocument{
			Title:          "CV Chuyên nghiệp",
			FirstName:      "Nguyễn",
			LastName:       "Văn A",
			JobTitle:       "Kỹ sư phần mềm",
			City:           "Hà Nội",
			Country:        "Việt Nam",
			Email:          "example@email.com",
			Phone:          "0123456789",
			Summary:        "Kỹ sư phần mềm với 5 năm kinh nghiệm trong phát triển web và mobile. Thành thạo ReactJS, Node.js và các công nghệ hiện đại.",
			ShortTermGoals: "Phát triển kỹ năng quản lý dự án và trở thành team lead trong vòng 1-2 năm tới. Tham gia các dự án với công nghệ mới để nâng cao kiến thức chuyên môn.",
			LongTermGoals:  "Hướng tới vị trí kỹ sư trưởng (Principal Engineer) trong 3-5 năm, đóng góp vào các quyết định kiến trúc hệ thống và chiến lược công nghệ của công ty.",
			WorkExperiences: []types.WorkExperience{
				{
					Position:    "Senior Frontend Developer",
					Company:     "Tech Company X",
					StartDate:   "2021-01-01",
					EndDate:     "2023-12-31",
					Description: "Phát triển và duy trì các ứng dụng web với ReactJS, Redux. Tối ưu hiệu suất và cải thiện trải nghiệm người dùng.",
				},
				{
					Position:    "Web Developer",
					Company:     "Agency Y",
					StartDate:   "2018-06-01",
					EndDate:     "2020-12-31",
					Description: "Xây dựng website cho khách hàng sử dụng HTML, CSS, JavaScript và các framework hiện đại.",
				},
			},
			Educations: []types.Education{
				{Degree: "Kỹ sư Công nghệ thông tin", School: "Đại học Bách Khoa Hà Nội", StartDate: "2014-09-01", EndDate: "2018-05-31"},
			},
			Skills:       []string{"HTML", "CSS", "JavaScript", "ReactJS", "Node.js", "Git", "Redux", "TypeScript"},
			ColorHex:     "#7c3aed",
			BorderStyle:  types.BorderSquare,
			TemplateType: types.Template1,
		},
	},
	{
		ID:        types.Template2,
		Name:      "Mẫu 2",
		Thumbnail: "/templates/template_3.webp",
		Sample: types.ResumeDocument{
			Title:          "CV Sáng tạo",
			FirstName:      "Trần",
			LastName:       "Thị B",
			JobTitle:       "UI/UX Designer",
			City:           "Hồ Chí Minh",
			Country:        "Việt Nam",
			Email:          "design@email.com",
			Phone:          "0987654321",
			Summary:        "Designer đam mê với 4 năm kinh nghiệm trong thiết kế UI/UX. Chuyên tạo ra các trải nghiệm người dùng đẹp mắt và trực quan.",
			ShortTermGoals: "Nâng cao kỹ năng trong thiết kế hệ thống và animation. Tham gia các dự án lớn để phát triển portfolio cá nhân trong 1-2 năm tới.",
			LongTermGoals:  "Trở thành Design Lead cho một team thiết kế và xây dựng các sản phẩm với trải nghiệm người dùng xuất sắc. Đóng góp vào việc phát triển design system cho các sản phẩm quy mô lớn.",
			WorkExperiences: []types.WorkExperience{
				{
					Position:    "Senior UI/UX Designer",
					Company:     "Creative Studio Z",
					StartDate:   "2020-03-01",
					EndDate:     "2023-12-31",
					Description: "Thiết kế giao diện người dùng và trải nghiệm người dùng cho các ứng dụng web và mobile. Làm việc với các stakeholder để hiểu và đáp ứng yêu cầu.",
				},
				{
					Position:    "Graphic Designer",
					Company:     "Marketing Agency W",
					StartDate:   "2018-01-01",
					EndDate:     "2020-02-28",
					Description: "Thiết kế các tài liệu marketing, banner, logo và ấn phẩm cho khách hàng.",
				},
			},
			Educations: []types.Education{
				{Degree: "Cử nhân Thiết kế Đồ họa", School: "Đại học Mỹ thuật TP.HCM", StartDate: "2014-09-01", EndDate: "2018-05-31"},
			},
			Skills:       []string{"Figma", "Adobe XD", "Photoshop", "Illustrator", "UI Design", "UX Research", "Wireframing", "Prototyping"},
			ColorHex:     "#a21caf",
			BorderStyle:  types.BorderSquircle,
			TemplateType: types.Template2,
		},
	},
	{
		ID:        types.Template3,
		Name:      "Mẫu 3",
		Thumbnail: "/templates/template_4.webp",
		Sample: types.ResumeDocument{
			Title:          "CV Tối giản",
			FirstName:      "Lê",
			LastName:       "Văn C",
			JobTitle:       "Project Manager",
			City:           "Đà Nẵng",
			Country:        "Việt Nam",
			Email:          "manager@email.com",
			Phone:          "0369852147",
			Summary:        "Quản lý dự án với hơn 7 năm kinh nghiệm trong lĩnh vực công nghệ. Chuyên môn trong việc lập kế hoạch, triển khai và điều phối các dự án phát triển phần mềm quy mô lớn. Kỹ năng mạnh về lãnh đạo, giao tiếp và quản lý thời gian, giúp đội ngũ đạt hiệu suất tối đa.",
			ShortTermGoals: "Hoàn thành chứng chỉ PMP trong vòng 1 năm tới và áp dụng kiến thức mới vào công việc. Tối ưu hóa quy trình quản lý dự án để tăng hiệu quả và giảm thời gian hoàn thành.",
			LongTermGoals:  "Thăng tiến lên vị trí Director of Project Management trong vòng 5 năm, quản lý nhiều nhóm dự án và tham gia vào việc định hướng chiến lược cho công ty.",
			WorkExperiences: []types.WorkExperience{
				{
					Position:    "Senior Project Manager",
					Company:     "Tech Solutions Corp",
					StartDate:   "2019-06-01",
					EndDate:     "2023-12-31",
					Description: "• Quản lý 5+ dự án phát triển phần mềm quy mô lớn từ khâu lên ý tưởng đến triển khai sản phẩm\n• Điều phối đội ngũ 15 người gồm developers, designers và QA, tăng hiệu suất làm việc lên 30%\n• Quản lý ngân sách dự án lên đến 500.000 USD, tiết kiệm 15% chi phí thông qua tối ưu hóa quy trình",
				},
				{
					Position:    "Project Coordinator",
					Company:     "Digital Agency V",
					StartDate:   "2016-02-01",
					EndDate:     "2019-05-31",
					Description: "• Hỗ trợ quản lý 10+ dự án web và mobile app cho các khách hàng doanh nghiệp\n• Lập kế hoạch, theo dõi tiến độ và báo cáo kết quả cho các bên liên quan\n• Tổ chức họp sprint planning, daily standup và retrospective theo phương pháp Scrum",
				},
				{
					Position:    "Business Analyst",
					Company:     "Software Innovations Ltd",
					StartDate:   "2014-07-01",
					EndDate:     "2016-01-31",
					Description: "• Phân tích yêu cầu kinh doanh và chuyển đổi thành đặc tả kỹ thuật\n• Tạo user stories, use cases và wireframes cho các tính năng phần mềm",
				},
			},
			Educations: []types.Education{
				{Degree: "Thạc sĩ Quản trị Kinh doanh", School: "Đại học Kinh tế Đà Nẵng", StartDate: "2014-09-01", EndDate: "2016-05-31"},
				{Degree: "Cử nhân Công nghệ Thông tin", School: "Đại học Đà Nẵng", StartDate: "2010-09-01", EndDate: "2014-05-31"},
				{Degree: "Chứng chỉ Quản lý Dự án Chuyên nghiệp (PMP)", School: "Project Management Institute", StartDate: "2018-01-01", EndDate: "2018-03-15"},
			},
			Skills: []string{
				"Quản lý dự án", "Agile/Scrum", "Kanban", "Jira", "MS Project", "Trello",
				"Lãnh đạo", "Phân tích kinh doanh", "Quản lý rủi ro", "Đàm phán", "Tiếng Anh",
			},
			ColorHex:     "#000000",
			BorderStyle:  types.BorderSquare,
			TemplateType: types.Template3,
		},
	},
	{
		ID:        types.Template4,
		Name:      "Mẫu 4",
		Thumbnail: "/templates/template_5.webp",
		Sample: types.ResumeDocument{
			Title:          "CV Hiện đại",
			FirstName:      "Trần",
			LastName:       "Minh",
			JobTitle:       "Kỹ sư Phần mềm",
			City:           "Hà Nội",
			Country:        "Việt Nam",
			Email:          "minhtran@example.com",
			Phone:          "0912345678",
			Summary:        "Kỹ sư phần mềm với 3 năm kinh nghiệm phát triển web. Có kiến thức vững về ReactJS, Node.js và tối ưu hóa hiệu suất ứng dụng.",
			ShortTermGoals: "Phát triển sâu hơn về kiến trúc phần mềm và trở thành senior developer trong 1-2 năm tới.",
			LongTermGoals:  "Định hướng trở thành solution architect và đóng góp vào các dự án mã nguồn mở lớn.",
			WorkExperiences: []types.WorkExperience{
				{
					Position:    "Frontend Developer",
					Company:     "Tech Solutions",
					StartDate:   "2022-01-01",
					EndDate:     "2023-12-31",
					Description: "• Phát triển và tối ưu các ứng dụng web sử dụng React và TypeScript\n• Cải thiện hiệu suất trang web, giảm 40% thời gian tải trang\n• Xây dựng UI component library cho toàn công ty",
				},
				{
					Position:    "Web Developer",
					Company:     "Digital Agency",
					StartDate:   "2020-06-01",
					EndDate:     "2021-12-31",
					Description: "• Xây dựng các website cho khách hàng sử dụng JavaScript và các framework hiện đại\n• Làm việc với team design để biến UI/UX mockup thành code hoạt động",
				},
			},
			Educations: []types.Education{
				{Degree: "Kỹ sư Công nghệ thông tin", School: "Đại học Bách Khoa Hà Nội", StartDate: "2016-09-01", EndDate: "2020-05-31"},
			},
			Skills:       []string{"JavaScript", "TypeScript", "ReactJS", "Next.js", "Node.js", "HTML/CSS", "Git", "REST API"},
			ColorHex:     "#1e7b77",
			BorderStyle:  types.BorderSquare,
			TemplateType: types.Template4,
		},
	},
}
