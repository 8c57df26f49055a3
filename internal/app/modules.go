package app

import (
	"github.com/gggion/org-transclusion-blocks/internal/linktype"
	"github.com/gggion/org-transclusion-blocks/modules/filelink"
	"github.com/gggion/org-transclusion-blocks/modules/httplink"
	"github.com/gggion/org-transclusion-blocks/modules/idlink"
)

// coreModules is the definitive list of all link type modules that are
// compiled into the binary.
var coreModules = []linktype.Module{
	&filelink.Module{},
	&httplink.Module{},
	&idlink.Module{},
}
