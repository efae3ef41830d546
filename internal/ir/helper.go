package ir

// Helper names a runtime function the generated code imports or
// destructures, per spec.md §4.6's "collected set in canonical order."
type Helper int

const (
	HelperCreateVNode Helper = iota
	HelperCreateBlock
	HelperCreateElementVNode
	HelperCreateElementBlock
	HelperOpenBlock
	HelperCreateCommentVNode
	HelperCreateTextVNode
	HelperToDisplayString
	HelperFragment
	HelperRenderList
	HelperRenderSlot
	HelperWithCtx
	HelperResolveComponent
	HelperResolveDirective
	HelperResolveDynamicComponent
	HelperWithDirectives
	HelperMergeProps
	HelperNormalizeClass
	HelperNormalizeStyle
	HelperNormalizeProps
	HelperGuardReactiveProps
	HelperWithMemo
	HelperIsMemoSame
	HelperPushScopeId
	HelperPopScopeId
	HelperTransition
	HelperTransitionGroup
	HelperKeepAlive
	HelperTeleport
	HelperSuspense
)

// strs is the canonical runtime-exported identifier for each helper, keyed
// exactly as CompileOption.helper_strs describes in spec.md §6. The
// generator aliases each with a leading underscore on import/destructure
// (e.g. "createVNode" -> "_createVNode"), matching the wire format in §6.
var strs = map[Helper]string{
	HelperCreateVNode:             "createVNode",
	HelperCreateBlock:             "createBlock",
	HelperCreateElementVNode:      "createElementVNode",
	HelperCreateElementBlock:      "createElementBlock",
	HelperOpenBlock:               "openBlock",
	HelperCreateCommentVNode:      "createCommentVNode",
	HelperCreateTextVNode:         "createTextVNode",
	HelperToDisplayString:         "toDisplayString",
	HelperFragment:                "Fragment",
	HelperRenderList:              "renderList",
	HelperRenderSlot:              "renderSlot",
	HelperWithCtx:                 "withCtx",
	HelperResolveComponent:        "resolveComponent",
	HelperResolveDirective:        "resolveDirective",
	HelperResolveDynamicComponent: "resolveDynamicComponent",
	HelperWithDirectives:          "withDirectives",
	HelperMergeProps:              "mergeProps",
	HelperNormalizeClass:          "normalizeClass",
	HelperNormalizeStyle:          "normalizeStyle",
	HelperNormalizeProps:          "normalizeProps",
	HelperGuardReactiveProps:      "guardReactiveProps",
	HelperWithMemo:                "withMemo",
	HelperIsMemoSame:              "isMemoSame",
	HelperPushScopeId:             "pushScopeId",
	HelperPopScopeId:              "popScopeId",
	HelperTransition:              "Transition",
	HelperTransitionGroup:         "TransitionGroup",
	HelperKeepAlive:               "KeepAlive",
	HelperTeleport:                "Teleport",
	HelperSuspense:                "Suspense",
}

// Str returns h's runtime-exported name.
func (h Helper) Str() string { return strs[h] }

// Alias returns the generated local binding for h, e.g. "_createVNode".
func (h Helper) Alias() string { return "_" + strs[h] }
