package output

import (
	"html/template"
	"io"
)

var listTemplate = template.Must(template.New("list").Parse(`<section class="task-list" data-filter="{{.Filter}}">
<div class="stats"><span id="totalTasks">{{.Total}}</span> total, <span id="completedTasks">{{.Completed}}</span> completed</div>
{{- if .Tasks}}
<div id="tasksList" class="tasks-list">
{{- range .Tasks}}
<div class="task-item{{if .Completed}} completed{{end}}" data-id="{{.ID}}">
<div class="task-checkbox{{if .Completed}} checked{{end}}"></div>
{{- if eq .ID $.EditingID}}
<input class="task-edit" type="text" maxlength="100" value="{{.Text}}">
{{- else}}
<div class="task-content{{if .Completed}} completed{{end}}">{{.Text}}</div>
{{- end}}
<div class="task-actions"><button class="btn-delete" title="Delete"></button></div>
</div>
{{- end}}
</div>
{{- else}}
<div id="emptyState" class="empty-state">No tasks found</div>
{{- end}}
</section>
`))

// HTML writes the list as a markup fragment. Task text is escaped.
func HTML(w io.Writer, lv ListView) error {
	if lv.Filter == "" {
		lv.Filter = "all"
	}
	return listTemplate.Execute(w, lv)
}
