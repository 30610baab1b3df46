/*
pose-estimator overlays a detected human skeleton onto video frames.

A pose landmark model supplies, per frame, a set of normalized body
keypoints with confidence scores.  This package transforms those keypoints
into pixel space drawing primitives, renders them onto the frame via the
render subpackage, and streams the annotated frames to an output video
with an optional live preview.

See the poseoverlay command under cmd for usage.
*/
package pose
