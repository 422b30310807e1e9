// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ManifestNotFoundId Id = iota + 1
	BadLineEndingId
	LeadingColonId
	MissingFieldId
	InvalidVersionId
	InvalidBumpModeId
	ComponentOverflowId
	InvalidAPIVersionId
	PatchFailedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue page with the named glamour style ("dark",
// "light", "notty" or a JSON style path).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# No addon manifest found!

addonpack looks for a manifest named after the addon directory, e.g.
` + "`MyAddon/MyAddon.txt`" + `.

## Things you can try:
- Run the command from the addon directory, or point at it:
~~~
$ addonpack -C path/to/MyAddon bump
~~~

- Check that the manifest file name matches the directory name exactly
- If your manifests use another extension, set it in the config:
~~~cue
manifest: extension: "toc"
~~~`,
	}

	badLineEndingIssue = &Issue{
		id: BadLineEndingId,
		mdMsg: `
# Manifest uses CRLF line endings!

The game client cannot read manifests with Windows (CRLF) line endings, so
addonpack refuses to touch them.

## Things you can try:
- Convert the file to LF line endings in your editor
- Or from a shell:
~~~
$ sed -i 's/\r$//' MyAddon.txt
~~~

- Add ` + "`*.txt text eol=lf`" + ` to your .gitattributes`,
	}

	leadingColonIssue = &Issue{
		id: LeadingColonId,
		mdMsg: `
# Manifest line starts with a colon!

A line beginning with ':' breaks manifest parsing in the game client.

## Things you can try:
- Remove or indent the offending line
- If it is a comment, start it with '#' instead`,
	}

	missingFieldIssue = &Issue{
		id: MissingFieldId,
		mdMsg: `
# Required manifest field missing!

The operation needs a field the manifest does not declare.

## Things you can try:
- Add the field near the top of the manifest:
~~~
## Version: 1.0.0
## APIVersion: 100000
~~~

- Check the field name spelling and the "## " prefix`,
	}

	invalidVersionIssue = &Issue{
		id: InvalidVersionId,
		mdMsg: `
# Invalid version!

Versions must be either ` + "`X.Y.Z`" + ` or ` + "`X.Y rZ`" + `, with
non-negative integer components and no leading zeros.

## Examples:
- ` + "`1.2.3`" + `
- ` + "`2.0 r7`",
	}

	invalidBumpModeIssue = &Issue{
		id: InvalidBumpModeId,
		mdMsg: `
# Unknown bump part!

Only ` + "`major`" + `, ` + "`minor`" + ` and ` + "`patch`" + ` can be bumped.

## Things you can try:
~~~
$ addonpack bump minor
~~~

- Check ` + "`bump.default_part`" + ` in your config`,
	}

	componentOverflowIssue = &Issue{
		id: ComponentOverflowId,
		mdMsg: `
# Version component too large!

The AddOnVersion build number packs each component into two decimal
digits, so no component may exceed 99.

## Things you can try:
- Bump the next larger part instead:
~~~
$ addonpack bump major
~~~

- Or set a version explicitly:
~~~
$ addonpack bump --set 2.0.0
~~~`,
	}

	invalidAPIVersionIssue = &Issue{
		id: InvalidAPIVersionId,
		mdMsg: `
# Invalid APIVersion!

APIVersion must be one or more non-negative integers separated by spaces.

## Example:
~~~
## APIVersion: 101041 101042
~~~`,
	}

	patchFailedIssue = &Issue{
		id: PatchFailedId,
		mdMsg: `
# Failed to update a file!

The manifest or one of the PackageBumpFiles could not be rewritten. Files
processed before the failure keep their new content.

## Things you can try:
- Check that every entry in ` + "`; PackageBumpFiles:`" + ` exists
- Check file permissions and free disk space
- Run ` + "`addonpack manifest check`" + ` to validate before bumping`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your addonpack configuration file could not be loaded.

## Things you can try:
- Check the CUE syntax of your config file
- Show where addonpack looks for it:
~~~
$ addonpack config path
~~~

- Reset to defaults:
~~~
$ addonpack config init --force
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

addonpack writes a scratch copy next to each file it edits, so it needs
write access to the addon directory as well as the files.

## Things you can try:
- Check file/directory permissions
- Run addonpack from a directory you own`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():  manifestNotFoundIssue,
		badLineEndingIssue.Id():     badLineEndingIssue,
		leadingColonIssue.Id():      leadingColonIssue,
		missingFieldIssue.Id():      missingFieldIssue,
		invalidVersionIssue.Id():    invalidVersionIssue,
		invalidBumpModeIssue.Id():   invalidBumpModeIssue,
		componentOverflowIssue.Id(): componentOverflowIssue,
		invalidAPIVersionIssue.Id(): invalidAPIVersionIssue,
		patchFailedIssue.Id():       patchFailedIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		permissionDeniedIssue.Id():  permissionDeniedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
